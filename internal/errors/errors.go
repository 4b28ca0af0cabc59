package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// This package defines a centralized set of errors for the application.
// Services and the transport return these so the API layer (and the terminal
// client) can use `errors.Is()` / `errors.As()` to decide how to present a
// failure without knowing where it came from.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data failed a local rule (form
	// fields, file type, file size). No network call is made for these.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation could not be completed because
	// it conflicts with the current state (e.g. a reply is still streaming).
	// This is typically mapped to a 409 Conflict HTTP status.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the remote API refused the action.
	// This is typically mapped to a 403 Forbidden HTTP status.
	ErrPermission = errors.New("permission denied")

	// ErrInternal signifies an unexpected error. It is used to avoid leaking
	// implementation details to the browser.
	ErrInternal = errors.New("internal server error")

	// ErrAuth signifies a missing or rejected bearer token. The operation is
	// halted and not retried; the user has to log in again.
	ErrAuth = errors.New("authentication required")

	// ErrMalformedResponse signifies that a success response from the remote
	// API lacked a required field (e.g. conversation id or uuid).
	ErrMalformedResponse = errors.New("malformed response")
)

// HTTPError is returned when the remote API answers with a non-success status.
type HTTPError struct {
	Op     string
	Status int
	// Detail is the server supplied `detail` field, if any.
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: HTTP error! status: %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: HTTP error! status: %d", e.Op, e.Status)
}

// Is lets a 401 answer match ErrAuth and a 403 answer match ErrPermission.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrAuth:
		return e.Status == http.StatusUnauthorized
	case ErrPermission:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// NetworkError wraps a transport level failure (DNS, refused connection,
// reset, timeout) for a single remote operation.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StreamError is returned when reading a completion stream fails midway.
// Partial holds what was decoded before the failure; it is never committed
// as the final reply.
type StreamError struct {
	Partial string
	Err     error
}

func (e *StreamError) Error() string {
	if e.Partial != "" {
		return fmt.Sprintf("stream error (partial content received: %d chars): %v", len(e.Partial), e.Err)
	}
	return fmt.Sprintf("stream error: %v", e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// IsUpstream reports whether err originated at the remote API boundary.
func IsUpstream(err error) bool {
	var httpErr *HTTPError
	var netErr *NetworkError
	return errors.As(err, &httpErr) || errors.As(err, &netErr) || errors.Is(err, ErrMalformedResponse)
}
