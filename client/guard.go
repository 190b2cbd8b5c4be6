package client

// Decision is a route guard verdict for rendering a protected view.
type Decision int

const (
	// DecisionWait means the session check has not resolved yet; show a
	// loading state, never a premature redirect.
	DecisionWait Decision = iota
	DecisionAllow
	DecisionRedirectLogin
	DecisionRedirectHome
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionRedirectHome:
		return "redirect-home"
	default:
		return "wait"
	}
}

// Guard decides whether a protected view may render. This is UI-layer
// defense-in-depth only; the server re-checks authorization on every
// privileged request.
func (s *Session) Guard(requireAdmin bool) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateUnknown:
		return DecisionWait
	case StateAnonymous:
		return DecisionRedirectLogin
	}

	if requireAdmin && (s.user == nil || !s.user.IsAdmin) {
		return DecisionRedirectHome
	}
	return DecisionAllow
}
