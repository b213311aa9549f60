package hui

import (
	"fmt"

	"go.ytsaurus.tech/library/go/core/xerrors"
)

// ErrorKind describes the type of error.
type ErrorKind int

const (
	// ErrInvalidArgument: a function was given something it cannot work
	// with, such as a bind target that is not callable or a nil class.
	ErrInvalidArgument ErrorKind = iota
	// ErrInvalidOperation: a user supplied callable or initializer failed.
	ErrInvalidOperation
	// ErrTemplateNotFound: no template was registered under the name.
	ErrTemplateNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrInvalidOperation:
		return "invalid operation"
	case ErrTemplateNotFound:
		return "template not found"
	default:
		return "error"
	}
}

// Error is returned by Toolkit operations that can fail.
type Error struct {
	Kind    ErrorKind
	Message string
	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new error.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// WithErr attaches the underlying error.
func (e *Error) WithErr(err error) *Error {
	e.Err = err
	return e
}

// KindOf returns the kind of the first *Error in the chain of err.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if xerrors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
