// Package apperror defines the operational error type used across handlers.
// Every expected failure (bad input, missing entity, auth problems, business
// rule violations) is wrapped into an *Error carrying an HTTP status code
// and a client-safe message.  Anything else reaching the error funnel is
// treated as a programming error and hidden behind a generic 500 response.
package apperror

import (
	"errors"
	"net/http"

	"videoclub/internal/config"
)

// Error is a tagged operational error: a status code plus a message safe to
// show to clients.  Err optionally wraps the underlying cause for logs.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an operational error with an explicit status code.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap is New with an underlying cause attached for server-side logging.
func Wrap(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Unauthorized builds a 401 error.  An empty message uses the default.
func Unauthorized(message string) *Error {
	if message == "" {
		message = config.MsgUnauthorized
	}
	return New(http.StatusUnauthorized, message)
}

// Forbidden builds a 403 error.
func Forbidden() *Error { return New(http.StatusForbidden, config.MsgForbidden) }

// Validation builds a 400 error carrying the joined violation message or a
// business-rule violation message.
func Validation(message string) *Error { return New(http.StatusBadRequest, message) }

// NotFound builds a 404 error.
func NotFound(message string) *Error {
	if message == "" {
		message = config.MsgNotFound
	}
	return New(http.StatusNotFound, message)
}

// Internal builds a 500 error.  The message is still exposed to clients in
// this case because it is deliberately chosen (e.g. forwarded upstream error
// text); use plain errors for failures that must stay hidden.
func Internal(message string) *Error {
	if message == "" {
		message = config.MsgServerError
	}
	return New(http.StatusInternalServerError, message)
}

// As extracts an *Error from err, reporting whether err is operational.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
