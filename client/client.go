package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"ajurnie/internal/model"
)

// FallbackErrorMessage is surfaced when the server response carries no
// usable message.
const FallbackErrorMessage = "Something went wrong. Please try again."

const defaultTimeout = 10 * time.Second

// Endpoints that return business-logic 401s. A 401 from these must not
// be treated as session expiry.
var sessionExemptPaths = map[string]bool{
	"/api/auth/login":           true,
	"/api/auth/change-password": true,
}

// Notifier receives the user-facing notifications the response pipeline
// produces. Implementations typically feed a toast/snackbar layer.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// APIError is the canonical error decoded from a non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
	Errors  map[string][]string
}

// Error returns the user-facing message with extraction precedence:
// first message of the first invalid field, else the top-level message,
// else the fixed fallback.
func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		fields := make([]string, 0, len(e.Errors))
		for field := range e.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			if msgs := e.Errors[field]; len(msgs) > 0 && msgs[0] != "" {
				return msgs[0]
			}
		}
	}
	if e.Message != "" {
		return e.Message
	}
	return FallbackErrorMessage
}

// RequestInterceptor transforms an outgoing request. Returning an error
// aborts the call.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor observes a completed exchange. err is non-nil for
// transport failures and API errors; interceptors run for both.
type ResponseInterceptor func(resp *http.Response, err error)

// Client is the single choke point for backend calls: it attaches the
// bearer token, sends and accepts JSON, and centralizes 401 handling
// and error notifications so call sites do not re-implement them.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      CredentialStore
	notifier   Notifier

	// onSessionExpired runs after an unexempted 401 clears the stored
	// token. UIs use it to navigate to the sign-in view.
	onSessionExpired func()

	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithNotifier installs the notification sink.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithSessionExpiredHook installs the callback invoked when a 401
// invalidates the local session.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// WithRequestInterceptor appends a request pipeline stage. Stages run
// in registration order, after the built-in JSON and bearer stages.
func WithRequestInterceptor(ri RequestInterceptor) Option {
	return func(c *Client) { c.requestInterceptors = append(c.requestInterceptors, ri) }
}

// WithResponseInterceptor appends a response pipeline stage.
func WithResponseInterceptor(ri ResponseInterceptor) Option {
	return func(c *Client) { c.responseInterceptors = append(c.responseInterceptors, ri) }
}

// New creates a client for the given API base URL.
func New(baseURL string, store CredentialStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		store:      store,
		notifier:   NopNotifier{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store exposes the credential store backing this client.
func (c *Client) Store() CredentialStore {
	return c.store
}

// SetSessionExpiredHook installs the expiry callback after construction.
// Sessions are built around an existing client, so the usual wiring is
// NewSession followed by this.
func (c *Client) SetSessionExpiredHook(fn func()) {
	c.onSessionExpired = fn
}

type callOptions struct {
	keepSessionOn401 bool
	silent           bool
	successNotice    string
}

// CallOption tunes a single request.
type CallOption func(*callOptions)

// KeepSessionOn401 marks the call as having business-logic 401s: the
// stored token is kept and no session-expired handling runs.
func KeepSessionOn401() CallOption {
	return func(o *callOptions) { o.keepSessionOn401 = true }
}

// Silent suppresses the error notification for this call. The error is
// still returned.
func Silent() CallOption {
	return func(o *callOptions) { o.silent = true }
}

// WithSuccessNotice surfaces the given message when the call succeeds.
func WithSuccessNotice(message string) CallOption {
	return func(o *callOptions) { o.successNotice = message }
}

// errorBody is the wire shape of server errors.
type errorBody struct {
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Errors  map[string][]string `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, opts ...CallOption) error {
	options := callOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if err := c.applyRequestInterceptors(req); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("request %s %s: %w", method, path, err)
		c.notifyError(err, options)
		c.runResponseInterceptors(nil, err)
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("read response body: %w", err)
		c.runResponseInterceptors(resp, err)
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeAPIError(resp.StatusCode, raw)
		c.handleAuthFailure(path, apiErr, options)
		c.notifyError(apiErr, options)
		c.runResponseInterceptors(resp, apiErr)
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			err = fmt.Errorf("decode response body: %w", err)
			c.runResponseInterceptors(resp, err)
			return err
		}
	}

	if options.successNotice != "" {
		c.notifier.Success(options.successNotice)
	}
	c.runResponseInterceptors(resp, nil)
	return nil
}

func (c *Client) applyRequestInterceptors(req *http.Request) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	token, err := c.store.Get()
	if err != nil {
		return fmt.Errorf("read credential store: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	for _, ri := range c.requestInterceptors {
		if err := ri(req); err != nil {
			return err
		}
	}
	return nil
}

// handleAuthFailure clears the stored token and fires the expiry hook
// on a true session-expiry 401. Exempted endpoints and per-call opt-out
// keep the session; an already-empty store never fires the hook twice.
func (c *Client) handleAuthFailure(path string, apiErr *APIError, options callOptions) {
	if apiErr.Status != http.StatusUnauthorized {
		return
	}
	if options.keepSessionOn401 || sessionExemptPaths[path] {
		return
	}

	token, err := c.store.Get()
	if err != nil || token == "" {
		return
	}
	_ = c.store.Clear()
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

func (c *Client) notifyError(err error, options callOptions) {
	if options.silent {
		return
	}
	c.notifier.Error(err.Error())
}

func (c *Client) runResponseInterceptors(resp *http.Response, err error) {
	for _, ri := range c.responseInterceptors {
		ri(resp, err)
	}
}

func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Message
		apiErr.Code = body.Code
		apiErr.Errors = body.Errors
	}
	if status >= http.StatusInternalServerError {
		// Never surface server internals to the user.
		apiErr.Message = ""
		apiErr.Errors = nil
	}
	return apiErr
}

// AuthResult is the payload of register and login.
type AuthResult struct {
	Token string              `json:"token"`
	User  *model.UserSnapshot `json:"user"`
}

// RegisterParams are the sign-up fields.
type RegisterParams struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	FullName             string `json:"fullname"`
	Role                 string `json:"role,omitempty"`
}

// ResetParams complete a password reset started by ForgotPassword.
type ResetParams struct {
	Email                string `json:"email"`
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Register creates an account and returns the issued token and user.
func (c *Client) Register(ctx context.Context, params RegisterParams, opts ...CallOption) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", params, &result, opts...); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login exchanges credentials for a token. A 401 here means invalid
// credentials, never session expiry.
func (c *Client) Login(ctx context.Context, email, password string, opts ...CallOption) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result, opts...); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me fetches the current user snapshot using the stored token.
func (c *Client) Me(ctx context.Context, opts ...CallOption) (*model.UserSnapshot, error) {
	var user model.UserSnapshot
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user, opts...); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword updates the password for the signed-in user. This
// endpoint is on the 401 exemption list: a wrong current password must
// not bounce the user to the login view.
func (c *Client) ChangePassword(ctx context.Context, current, updated string, opts ...CallOption) error {
	body := map[string]string{"current_password": current, "new_password": updated}
	return c.do(ctx, http.MethodPost, "/api/auth/change-password", body, nil, opts...)
}

// Logout invalidates the session server-side. Callers treat failures as
// best-effort and clear local state regardless.
func (c *Client) Logout(ctx context.Context, opts ...CallOption) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, opts...)
}

// ForgotPassword starts a password reset. The server responds uniformly
// whether or not the email exists.
func (c *Client) ForgotPassword(ctx context.Context, email string, opts ...CallOption) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", body, nil, opts...)
}

// ResetPassword completes a password reset. It does not sign the user
// in; callers navigate to sign-in on success.
func (c *Client) ResetPassword(ctx context.Context, params ResetParams, opts ...CallOption) error {
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password", params, nil, opts...)
}

// Get issues a GET for non-auth resources, decoding the response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}, opts ...CallOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}, opts ...CallOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}, opts ...CallOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts...)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, opts ...CallOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, opts...)
}
