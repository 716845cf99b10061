package apperror

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type Type string

const (
	TypeInvalidInput Type = "INVALID_INPUT"
	TypeNotFound     Type = "NOT_FOUND"
	TypeUnavailable  Type = "UNAVAILABLE"
	TypeMalformed    Type = "MALFORMED"
	TypeInternal     Type = "INTERNAL"
)

type Error struct {
	Type    Type
	Message string
	Err     error
	Stack   []byte
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *Error) StackTrace() []byte {
	if e == nil {
		return nil
	}
	return e.Stack
}

func New(t Type, message string, err error) *Error {
	var stack []byte
	if err != nil {
		var ge *goerrors.Error
		if errors.As(err, &ge) {
			stack = ge.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &Error{Type: t, Message: message, Err: err, Stack: stack}
}

func InvalidInput(message string, err error) *Error {
	return New(TypeInvalidInput, message, err)
}

func NotFound(message string, err error) *Error {
	return New(TypeNotFound, message, err)
}

func Unavailable(message string, err error) *Error {
	return New(TypeUnavailable, message, err)
}

func Malformed(message string, err error) *Error {
	return New(TypeMalformed, message, err)
}

func Internal(message string, err error) *Error {
	return New(TypeInternal, message, err)
}

// TypeOf reports the Type of the first *Error in err's chain, or "" if none.
func TypeOf(err error) Type {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ""
}

// StackOf returns the stack captured by the first *Error in err's chain.
func StackOf(err error) []byte {
	var e *Error
	if errors.As(err, &e) {
		return e.StackTrace()
	}
	return nil
}
