package common

import (
	"errors"
	"fmt"
)

// Failure kinds for the authorization gate and content operations. Callers
// classify with errors.Is and translate to transport status codes.
var (
	ErrNotAuthenticated = errors.New("no session")
	ErrNotAuthorized    = errors.New("not owner")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("invalid request")
	ErrUnavailable      = errors.New("backing store unavailable")
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}

// IsClientError reports whether err was caused by the caller rather than a
// backing store or the service itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrNotAuthorized) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrValidation)
}
