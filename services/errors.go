package services

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures. The set is closed; the HTTP layer maps
// each kind to one status code.
type Kind int

const (
	KindUnexpected Kind = iota
	KindInvalidInput
	KindNotFound
	KindGeneration
	KindStoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindNotFound:
		return "NotFound"
	case KindGeneration:
		return "SummaryGenerationError"
	case KindStoreUnavailable:
		return "DatabaseError"
	default:
		return "InternalServerError"
	}
}

// Error is returned by every Service operation.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err; anything that is not an *Error is unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

func newError(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func invalidInput(op, message string) *Error {
	return newError(KindInvalidInput, op, message, nil)
}

func notFound(op, message string) *Error {
	return newError(KindNotFound, op, message, nil)
}

func generationFailed(op, message string, err error) *Error {
	return newError(KindGeneration, op, message, err)
}

func storeUnavailable(op string, err error) *Error {
	return newError(KindStoreUnavailable, op, "database operation failed", err)
}
