package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so the HTTP layer can map it to a status code.
type Kind int

const (
	KindUnauthorized Kind = iota
	KindNotFound
	KindConflict
	KindBadRequest
	KindDatabase
	KindInternal
)

// Error is a failure with an HTTP-mappable kind and two client messages:
// Message is shown outside production, Public (usually empty) inside it.
type Error struct {
	Kind    Kind
	Message string
	Public  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WithPublic sets the message clients see in production. Without it the
// production message is empty, the information-leak control for session and
// recovery failures.
func (e *Error) WithPublic(msg string) *Error {
	e.Public = msg
	return e
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func BadRequest(msg string) *Error   { return &Error{Kind: KindBadRequest, Message: msg} }

func Database(msg string, err error) *Error {
	return &Error{Kind: KindDatabase, Message: msg, Err: err}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// Render translates any error into a status code and a client-visible
// message. The full error stays available for logging.
func Render(err error, production bool) (int, string) {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal("unexpected error", err)
	}
	if production {
		return e.Status(), e.Public
	}
	return e.Status(), e.Message
}
