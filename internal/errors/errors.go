package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("user already exists")
	// ErrInvalidCredentials is returned on login with an unknown email or wrong
	// password. The same error covers both so the response shape never reveals
	// which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidCurrentPassword is returned when a password change supplies the
	// wrong current password.
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	// ErrInvalidResetToken is returned when a password reset token is unknown or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrPasswordMismatch is returned when a password confirmation does not match.
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrExerciseNotFound is returned when an exercise lookup misses.
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrGoalNotFound is returned when a goal lookup misses.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrCouponNotFound is returned when a coupon lookup misses.
	ErrCouponNotFound = errors.New("coupon not found")
	// ErrSubscriptionNotFound is returned when a user has no subscription record.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrAdminRequired is returned when a non-admin calls an admin endpoint.
	ErrAdminRequired = errors.New("admin access required")
	// ErrFeatureLocked is returned when the caller's role or subscription does
	// not grant the requested feature.
	ErrFeatureLocked = errors.New("feature requires an active subscription")
	// ErrUnknownPlan is returned when changing to a plan that does not exist.
	ErrUnknownPlan = errors.New("unknown subscription plan")
)

// ErrorResponse is the standardized error body. Errors carries field-level
// validation messages when present; clients surface the first message of the
// first invalid field, then Message, then a generic fallback.
type ErrorResponse struct {
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// HTTPError pairs a domain error with a status code and machine code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Errors     map[string][]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// NewValidationError creates a 422 error with field-level messages.
func NewValidationError(fields map[string][]string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    "validation failed",
		Code:       "VALIDATION_FAILED",
		Errors:     fields,
	}
}

// ToErrorResponse converts an HTTPError to its response body.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
		Errors:  e.Errors,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidCurrentPassword):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CURRENT_PASSWORD")
	case errors.Is(err, ErrInvalidResetToken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RESET_TOKEN")
	case errors.Is(err, ErrPasswordMismatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_MISMATCH")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrExerciseNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EXERCISE_NOT_FOUND")
	case errors.Is(err, ErrGoalNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "GOAL_NOT_FOUND")
	case errors.Is(err, ErrCouponNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COUPON_NOT_FOUND")
	case errors.Is(err, ErrSubscriptionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SUBSCRIPTION_NOT_FOUND")
	case errors.Is(err, ErrAdminRequired):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ADMIN_REQUIRED")
	case errors.Is(err, ErrFeatureLocked):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FEATURE_LOCKED")
	case errors.Is(err, ErrUnknownPlan):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_PLAN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
