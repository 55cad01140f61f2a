// Package domainerr tags money-movement failures so callers can map them to a
// response without matching on message text.
package domainerr

import (
	"errors"
	"fmt"
)

type Kind int8

const (
	KindSystem Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindSystem:
		return "system"
	}
	return fmt.Sprintf("kind(%d)", int8(k))
}

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(op, format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

func NotFound(op, format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf(format, args...)}
}

func Conflict(op, format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Op: op, Message: fmt.Sprintf(format, args...)}
}

// System wraps an infrastructure failure. A nil err yields nil.
func System(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindSystem, Op: op, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain. Untagged errors
// are system errors.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindSystem
}

// Is reports whether err is non-nil and tagged with kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
