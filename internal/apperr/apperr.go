// Package apperr defines the application error taxonomy. Services return
// *apperr.Error values; HTTP handlers dispatch on Kind to pick a status code
// instead of inferring it from message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping and retry policy.
type Kind string

const (
	// KindBadRequest means the input is missing or malformed; the client must fix and resubmit.
	KindBadRequest Kind = "bad_request"
	// KindConflict means the request collides with existing state (e.g. duplicate email).
	KindConflict Kind = "conflict"
	// KindUnauthorized means credentials or token are missing/invalid; the caller must re-authenticate.
	KindUnauthorized Kind = "unauthorized"
	// KindForbidden means the caller is authenticated but not allowed to act on the resource.
	KindForbidden Kind = "forbidden"
	// KindNotFound means the referenced resource does not exist.
	KindNotFound Kind = "not_found"
	// KindInternal means a storage or signing failure; the cause is logged, never sent to the client.
	KindInternal Kind = "internal"
)

// Error is a tagged application error. Message is safe to return to clients;
// Cause (if any) is internal detail for logs only.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with the given kind and client-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// BadRequest returns a KindBadRequest error.
func BadRequest(message string) *Error { return New(KindBadRequest, message) }

// Conflict returns a KindConflict error.
func Conflict(message string) *Error { return New(KindConflict, message) }

// Unauthorized returns a KindUnauthorized error.
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

// Forbidden returns a KindForbidden error.
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// NotFound returns a KindNotFound error.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Internal wraps cause with a generic client-safe message. The cause never
// reaches the client.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// From converts err to *Error. Non-tagged errors become KindInternal with a
// generic message so that ambiguity fails closed and no internal detail leaks.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal server error", err)
}

// HTTPStatus maps a kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
