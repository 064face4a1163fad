// Package apperr defines the error values surfaced across package
// boundaries and the classification used to decide how they are presented.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for presentation: configuration problems get a
// persistent setup banner, conflicts ask the caller to refresh and retry,
// validation failures block before any store call, and everything else is
// a transient notification.
type Kind int

const (
	Transient Kind = iota
	Config
	Conflict
	Validation
)

// Error is an application error with a stable, user-facing message.
type Error struct {
	Message string
	Kind    Kind
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Wrap returns a copy of e with the underlying cause attached.
func (e *Error) Wrap(cause error) *Error {
	return &Error{
		Message: e.Message,
		Kind:    e.Kind,
		Cause:   cause,
	}
}

// Fmt returns a copy of e with its message treated as a format string.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		Kind:    e.Kind,
		Cause:   e.Cause,
	}
}

// KindOf reports the classification of err, defaulting to Transient for
// errors that did not originate here.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return Transient
}
