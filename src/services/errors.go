package services

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindForbidden
	KindNotFound
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error carries a user-facing message and the kind that decides the HTTP status
type Error struct {
	Kind    Kind
	Message string
	Err     error
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

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func validationError(message string) *Error     { return newError(KindValidation, message) }
func authenticationError(message string) *Error { return newError(KindAuthentication, message) }
func forbiddenError(message string) *Error      { return newError(KindForbidden, message) }
func notFoundError(message string) *Error       { return newError(KindNotFound, message) }
func conflictError(message string) *Error       { return newError(KindConflict, message) }
func unavailableError(message string) *Error    { return newError(KindUnavailable, message) }

func internalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: MsgServerError, Err: err}
}

// KindOf returns the kind of a service error, KindInternal for anything else
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of err
func MessageOf(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}
	return MsgServerError
}
