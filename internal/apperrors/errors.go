// Package apperrors defines the error kinds surfaced to API clients.
//
// Services return these errors for expected failures; anything else is treated as an
// internal fault by the handlers.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an application error
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindDuplicate
)

// Error is an application error carrying a client-safe message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a malformed or out-of-range input error
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// Unauthorized returns a missing or invalid identity error
func Unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden returns an insufficient privilege error
func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound returns a referenced entity absent error
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict returns a state conflict error
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Duplicate returns a unique constraint violation error
func Duplicate(message string) error {
	return &Error{Kind: KindDuplicate, Message: message}
}

// Internal wraps an unexpected failure; the cause is never shown to clients
func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of the first application error in err's chain.
// Errors outside the taxonomy are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error to its response status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindDuplicate:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that may be shown to clients
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "internal server error"
}
