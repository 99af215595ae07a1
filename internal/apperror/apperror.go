// Package apperror defines the failure kinds the service surfaces and
// the constructors used across service and transport layers. The
// transport maps kinds to HTTP status codes; messages are the only
// detail exposed to callers.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the transport boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindForbidden
	KindUnauthorized
	KindGeocodeFailed
)

// Error carries a failure kind and a human-readable message. The
// wrapped cause, if any, stays server-side.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf returns the failure kind of err, or KindInternal when err does
// not carry one.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message of err, or a generic one
// when err does not carry a kind. Storage-engine detail never leaks.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewEmailTaken(email string) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf("user with email %s already exists", email)}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewInvalidCredentials is shared by the unknown-email and wrong-password
// paths so the two are indistinguishable to the caller.
func NewInvalidCredentials() *Error {
	return &Error{Kind: KindUnauthorized, Message: "invalid credentials"}
}

func NewForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewMissingToken() *Error {
	return &Error{Kind: KindForbidden, Message: "authorization token is missing"}
}

func NewInvalidToken() *Error {
	return &Error{Kind: KindForbidden, Message: "authorization token is invalid"}
}

func NewGeocodeFailed(address string, cause error) *Error {
	return &Error{Kind: KindGeocodeFailed, Message: fmt.Sprintf("could not resolve address %q", address), cause: cause}
}

func NewInternal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", cause: cause}
}

// ErrNotFound is the sentinel repositories return for missing rows.
// Services translate it into a kind-carrying NotFound error.
var ErrNotFound = errors.New("not found")
