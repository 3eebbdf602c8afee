package store

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package (and by the engine built
// on top of it) unwraps to exactly one of these.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrNoActiveProject = errors.New("no active project")
	ErrCorruptStore    = errors.New("corrupt store")
	ErrResolution      = errors.New("resolution failed")
	ErrInvalidName     = errors.New("invalid name")
)

// Stable error codes, shared with the JSON envelope of the CLI.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeAlreadyExists   = "ALREADY_EXISTS"
	CodeNoActiveProject = "NO_ACTIVE_PROJECT"
	CodeCorruptStore    = "CORRUPT_STORE"
	CodeResolution      = "RESOLUTION_FAILED"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInternal        = "INTERNAL_ERROR"
)

// Error is a user-facing failure with an optional hint on how to recover.
type Error struct {
	Kind    error
	Message string
	Hint    string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, hint string, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Hint: hint}
}

// NotFound reports a missing project or shortcut.
func NotFound(format string, args ...any) *Error {
	return newError(ErrNotFound, "", format, args...)
}

// AlreadyExists reports a name collision without an overwrite flag.
func AlreadyExists(hint, format string, args ...any) *Error {
	return newError(ErrAlreadyExists, hint, format, args...)
}

// InvalidName reports a rejected project name or shortcut key.
func InvalidName(format string, args ...any) *Error {
	return newError(ErrInvalidName, "", format, args...)
}

// ResolutionFailed reports a shortcut that could not be resolved.
func ResolutionFailed(format string, args ...any) *Error {
	return newError(ErrResolution, "", format, args...)
}

// Code returns the stable code for err.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoActiveProject):
		return CodeNoActiveProject
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAlreadyExists):
		return CodeAlreadyExists
	case errors.Is(err, ErrCorruptStore):
		return CodeCorruptStore
	case errors.Is(err, ErrResolution):
		return CodeResolution
	case errors.Is(err, ErrInvalidName):
		return CodeInvalidInput
	default:
		return CodeInternal
	}
}

// Hint returns the recovery hint attached to err, if any.
func Hint(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Hint
	}
	return ""
}
