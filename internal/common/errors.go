// Package common defines shared constants and sentinel errors used across
// client layers of HEVA. Callers should use errors.Is to match sentinel
// values and errors.As to recover a *FormError.
package common

import (
	"errors"
	"fmt"
)

var (
	// Session errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// Generic failure classes used by KindOf when no FormError is present.
	ErrValidation = errors.New("validation error")
	ErrServer     = errors.New("server error")
	ErrNetwork    = errors.New("network error")
)

// ErrorKind classifies a failure surfaced to the view layer.
type ErrorKind string

const (
	// KindValidation is a client-detected input problem; it never reaches the network.
	KindValidation ErrorKind = "validation"
	// KindServer means the endpoint was reachable but rejected the request.
	KindServer ErrorKind = "server"
	// KindNetwork means no response was received.
	KindNetwork ErrorKind = "network"
)

// FormError is a single problem reported to a form. Field is empty for
// form-scoped (banner) errors.
type FormError struct {
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
	Kind    ErrorKind `json:"type"`
	Err     error     `json:"-"`
}

func (e *FormError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *FormError) Unwrap() []error {
	errs := make([]error, 0, 2)
	switch e.Kind {
	case KindValidation:
		errs = append(errs, ErrValidation)
	case KindServer:
		errs = append(errs, ErrServer)
	case KindNetwork:
		errs = append(errs, ErrNetwork)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewFieldError returns a validation-kind error bound to field.
func NewFieldError(field, message string) *FormError {
	return &FormError{Field: field, Message: message, Kind: KindValidation}
}

// NewServerError returns a form-scoped server-kind error wrapping cause.
func NewServerError(message string, cause error) *FormError {
	return &FormError{Message: message, Kind: KindServer, Err: cause}
}

// NewNetworkError returns a form-scoped network-kind error wrapping cause.
func NewNetworkError(message string, cause error) *FormError {
	return &FormError{Message: message, Kind: KindNetwork, Err: cause}
}

// KindOf reports the kind of err. Errors that carry no FormError and match
// none of the class sentinels are reported as KindServer.
func KindOf(err error) ErrorKind {
	var fe *FormError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	}
	return KindServer
}

// FormErrors collects every *FormError in err's tree, in order. It does not
// descend into a FormError's own causes.
func FormErrors(err error) []*FormError {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FormError); ok {
		return []*FormError{fe}
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		var out []*FormError
		for _, e := range u.Unwrap() {
			out = append(out, FormErrors(e)...)
		}
		return out
	case interface{ Unwrap() error }:
		return FormErrors(u.Unwrap())
	}
	return nil
}
