package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable means no response was received (DNS, refused
	// connection, timeout, cancelled context).
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict is returned for 409, which the backend uses for an
	// already registered email.
	ErrConflict = errors.New("conflict")
	// ErrTooManyRequests is returned for 429.
	ErrTooManyRequests = errors.New("too many requests")
	// ErrRejected is returned for every other non-2xx response.
	ErrRejected = errors.New("request rejected")
	// ErrLocalDataNotAvailable is returned when the local store cannot be opened.
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

// StatusError keeps the status and body of a non-2xx response. It unwraps to
// one of the sentinel errors above.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("unexpected status %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	}
	return ErrRejected
}
