// Package errors provides a const-friendly string error type that supports
// wrapping a cause while remaining comparable with errors.Is.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Separator sits between an error's message and its wrapped cause.
const Separator = " -- "

// Error is a string based error type allowing packages to declare sentinel
// errors as constants.
type Error string

func (e Error) Error() string {
	return string(e)
}

// Is reports whether target carries the same message, either exactly or as
// the prefix of a wrapped error.
func (e Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return e.Error() == target.Error() || strings.HasPrefix(target.Error(), e.Error()+Separator)
}

// Wrap attaches cause to this error. The result still matches the sentinel
// via errors.Is and exposes the cause via errors.Unwrap.
func (e Error) Wrap(cause error) error {
	return wrapped{msg: string(e), cause: cause}
}

// Wrapf attaches a formatted cause message to this error.
func (e Error) Wrapf(format string, args ...any) error {
	return wrapped{msg: string(e), cause: fmt.Errorf(format, args...)}
}

type wrapped struct {
	msg   string
	cause error
}

func (w wrapped) Error() string {
	if w.cause == nil {
		return w.msg
	}
	return w.msg + Separator + w.cause.Error()
}

func (w wrapped) Is(target error) bool {
	return Error(w.msg).Is(target)
}

func (w wrapped) Unwrap() error {
	return w.cause
}

// The functions below mirror the standard library so callers importing this
// package don't need a second errors import.

// Is reports whether any error in err's tree matches target.
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns a new error with the specified message.
func New(message string) error {
	return errors.New(message)
}
