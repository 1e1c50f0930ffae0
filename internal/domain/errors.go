package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every expected business failure crossing the core
// boundary. Handlers map kinds to transport responses; nothing here is fatal
// to the process.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindNotFound       ErrorKind = "not_found"
	KindForbidden      ErrorKind = "forbidden"
	KindInvalidState   ErrorKind = "invalid_state"
	KindQuotaExceeded  ErrorKind = "quota_exceeded"
	KindReconciliation ErrorKind = "reconciliation"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func NotFoundError(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func ForbiddenError(format string, args ...any) *Error {
	return newError(KindForbidden, format, args...)
}

func InvalidStateError(format string, args ...any) *Error {
	return newError(KindInvalidState, format, args...)
}

func QuotaExceededError(format string, args ...any) *Error {
	return newError(KindQuotaExceeded, format, args...)
}

func ReconciliationError(format string, args ...any) *Error {
	return newError(KindReconciliation, format, args...)
}

// KindOf returns the kind of err, or the empty string for non-domain errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
