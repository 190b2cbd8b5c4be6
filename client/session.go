package client

import (
	"context"
	"errors"
	"sync"

	"ajurnie/internal/model"
)

// State is the session lifecycle state for one client instance.
type State int

const (
	// StateUnknown holds until Init resolves the stored token. Guards
	// must not redirect while in this state.
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// ErrSignInPending is returned when a sign-in or sign-up is triggered
// while a previous one is still in flight.
var ErrSignInPending = errors.New("authentication request already in flight")

// Session owns the current-user state and the mutating auth operations.
// It is safe for concurrent use.
type Session struct {
	client *Client

	mu      sync.Mutex
	state   State
	user    *model.UserSnapshot
	pending bool
}

// NewSession creates a session in the Unknown state. Call Init to
// resolve any stored token.
func NewSession(c *Client) *Session {
	return &Session{client: c, state: StateUnknown}
}

// Init resolves the stored token into Authenticated or Anonymous. With
// no token it settles Anonymous immediately; with one it asks the
// server, and a rejection clears the store.
func (s *Session) Init(ctx context.Context) error {
	token, err := s.client.Store().Get()
	if err != nil || token == "" {
		s.setAnonymous()
		return err
	}

	user, err := s.client.Me(ctx, Silent())
	if err != nil {
		// An unexempted 401 already cleared the store inside the
		// client; clear again for transport failures so a dead token
		// cannot linger.
		_ = s.client.Store().Clear()
		s.setAnonymous()
		return err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()
	return nil
}

// SignIn authenticates with an email/password pair. The token is stored
// before the user state is published, so any request issued afterwards
// sees it. A second call while one is in flight returns ErrSignInPending.
func (s *Session) SignIn(ctx context.Context, email, password string) (*model.UserSnapshot, error) {
	if !s.begin() {
		return nil, ErrSignInPending
	}
	defer s.end()

	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(result)
}

// SignUp registers a new account and signs it in.
func (s *Session) SignUp(ctx context.Context, params RegisterParams) (*model.UserSnapshot, error) {
	if !s.begin() {
		return nil, ErrSignInPending
	}
	defer s.end()

	result, err := s.client.Register(ctx, params)
	if err != nil {
		return nil, err
	}
	return s.establish(result)
}

// SignOut invalidates the session server-side on a best-effort basis,
// then unconditionally clears local state. A failed or timed-out server
// call never leaves a dead session behind.
func (s *Session) SignOut(ctx context.Context) {
	_ = s.client.Logout(ctx, Silent(), KeepSessionOn401())
	_ = s.client.Store().Clear()
	s.setAnonymous()
}

// RequestPasswordReset starts a reset. The result does not reveal
// whether the email exists.
func (s *Session) RequestPasswordReset(ctx context.Context, email string) error {
	return s.client.ForgotPassword(ctx, email)
}

// CompletePasswordReset finishes a reset. The user signs in separately
// afterwards.
func (s *Session) CompletePasswordReset(ctx context.Context, params ResetParams) error {
	return s.client.ResetPassword(ctx, params)
}

// HandleSessionExpired transitions to Anonymous. Wire it to the
// client's session-expired hook so any 401 on any call updates the
// session, not just auth endpoints.
func (s *Session) HandleSessionExpired() {
	s.setAnonymous()
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the current user snapshot, or nil when not authenticated.
func (s *Session) User() *model.UserSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Loading reports whether Init has not yet resolved.
func (s *Session) Loading() bool {
	return s.State() == StateUnknown
}

func (s *Session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return false
	}
	s.pending = true
	return true
}

func (s *Session) end() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

func (s *Session) establish(result *AuthResult) (*model.UserSnapshot, error) {
	if result.Token == "" || result.User == nil {
		return nil, errors.New("authentication response missing token or user")
	}
	if err := s.client.Store().Set(result.Token); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = result.User
	s.mu.Unlock()
	return result.User, nil
}

func (s *Session) setAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	s.mu.Unlock()
}
