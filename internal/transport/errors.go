package transport

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrAuthentication is returned when the server rejects the
	// credential (missing, expired, or invalid).
	ErrAuthentication = errors.New("authentication failed")

	// ErrPermission is returned when the credential is valid but the
	// role or permission is insufficient.
	ErrPermission = errors.New("permission denied")
)

// AuthError is returned on authentication-class failures. By the time
// the caller sees it, the session has already been torn down and the
// redirect to the login route issued.
type AuthError struct {
	// Status is the HTTP status the server answered with.
	Status int
	// Message is the resolved failure message.
	Message string
}

// Error returns a human-readable description of the failure.
func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (%d): %s", e.Status, e.Message)
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrAuthentication).
func (e *AuthError) Is(target error) bool {
	return target == ErrAuthentication
}

// PermissionError is returned on authorization-class failures. No
// session state changes on this path.
type PermissionError struct {
	Status  int
	Message string
}

// Error returns a human-readable description of the failure.
func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied (%d): %s", e.Status, e.Message)
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrPermission).
func (e *PermissionError) Is(target error) bool {
	return target == ErrPermission
}

// APIError is returned on every other non-success response. Message
// carries the server-supplied text even when the notification path
// suppressed it (validation failures), so call sites can still react.
type APIError struct {
	Status  int
	Message string
}

// Error returns a human-readable description of the failure.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed (%d)", e.Status)
}
