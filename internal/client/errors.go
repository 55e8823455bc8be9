package client

import (
	"errors"
	"fmt"
)

// GenericMessage is shown when neither the backend nor the transport gave a
// usable explanation.
const GenericMessage = "Something went wrong. Please try again later."

// Error is the failure returned by every collection call. StatusCode is 0 for
// transport failures (connection refused, DNS, cancelled context).
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransport reports whether the request never produced an HTTP response.
func (e *Error) IsTransport() bool { return e.StatusCode == 0 }

// Message extracts a human-readable message from any error. Client failures
// keep the backend's wording; other errors fall back to GenericMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ce *Error
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return GenericMessage
}

// StatusCode returns the HTTP status of a client failure, or 0.
func StatusCode(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	return 0
}
