package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrSessionExpired       = errors.New("session expired, please log in again")
	ErrNoSession            = errors.New("no session stored")
	ErrNoActiveAccount      = errors.New("no active account, activate an account to continue")
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountLimit         = errors.New("maximum of 4 accounts reached")
	ErrMissingSessionCookie = errors.New("captured cookies do not contain a session cookie")
	ErrBookingRejected      = errors.New("server responded but did not confirm the booking")
	ErrCheckinIncomplete    = errors.New("check-in did not complete")
	ErrNoServices           = errors.New("no services available")
	ErrInvalidInput         = errors.New("invalid input")
)

// HTTPError represents a non-2xx response from the booking service.
// 401 responses are never surfaced as HTTPError; they classify to
// ErrSessionExpired instead.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP error %d", e.StatusCode)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// ValidationError represents a validation error with field details
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) ValidationError {
	return ValidationError{
		Field:   field,
		Message: message,
	}
}
