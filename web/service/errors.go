package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a service failure. Controllers map kinds onto HTTP
// status codes; services never deal in status codes themselves.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidInput
	KindConflict
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindBadRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindConflict:
		return "Conflict"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindUnauthorized:
		return "Unauthorized"
	case KindNotFound:
		return "NotFound"
	case KindBadRequest:
		return "BadRequest"
	default:
		return "Internal"
	}
}

// Error is returned by every service operation that fails. Msg is safe to
// show to clients; Err is the underlying cause, if any.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind carried by err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

const msgInternal = "Internal server error"

var errNameRequired = errors.New("name is required")
