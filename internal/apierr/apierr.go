package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the stable classification every error surfaced by the registry
// falls into. The HTTP status and machine code are derived from it, and the
// CLI derives its exit code from it.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not-found"
	KindConflict        Kind = "conflict"
	KindRateLimited     Kind = "rate-limited"
	KindNetwork         Kind = "network"
	KindSystem          Kind = "system"
)

type Error struct {
	Kind    Kind
	Err     error
	Details any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func WithDetails(kind Kind, details any, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...), Details: details}
}

// KindOf classifies an arbitrary error. Anything that is not an *Error is a
// system error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindSystem
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func DetailsOf(err error) any {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Details
	}
	return nil
}

func Status(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Code is the stable machine code placed in the error envelope.
func Code(kind Kind) string {
	switch kind {
	case KindValidation:
		return "VALIDATION"
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindRateLimited:
		return "RATE_LIMITED"
	case KindNetwork:
		return "NETWORK"
	default:
		return "SYSTEM"
	}
}

// KindForCode is the inverse of Code, used by the client SDK to rebuild the
// error kind from a decoded envelope.
func KindForCode(code string) Kind {
	switch code {
	case "VALIDATION":
		return KindValidation
	case "UNAUTHENTICATED":
		return KindUnauthenticated
	case "FORBIDDEN":
		return KindForbidden
	case "NOT_FOUND":
		return KindNotFound
	case "CONFLICT":
		return KindConflict
	case "RATE_LIMITED":
		return KindRateLimited
	case "NETWORK":
		return KindNetwork
	default:
		return KindSystem
	}
}

// ExitCode maps an error to the CLI process exit code: 0 success, 1 user
// error, 2 system error, 3 network/API error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindValidation, KindUnauthenticated, KindForbidden, KindNotFound, KindConflict:
		return 1
	case KindNetwork, KindRateLimited:
		return 3
	default:
		return 2
	}
}
