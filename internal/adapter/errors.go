package adapter

import (
	"errors"
	"fmt"
)

// Sentinel errors for non-2xx responses. Every [APIError] unwraps to one of
// them so callers can branch with errors.Is.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

// APIError is an application error returned by the remote API.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Message is taken from the JSON "message" (or "error") field of the
	// body, falling back to the raw body and then to the status text.
	Message string

	kind error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// Message returns the user facing message of err: the server message for an
// [APIError] and err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
