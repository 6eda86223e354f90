// Package apperr defines the errors handlers surface to API clients.
package apperr

import (
	"errors"
	"net/http"
)

// Error is a client-facing failure with an HTTP status and message
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

// BadRequest is returned for malformed identifiers, disallowed query values
// and missing or unresolvable request fields.
func BadRequest() *Error {
	return &Error{Status: http.StatusBadRequest, Msg: "bad request"}
}

// NotFound reports a well-formed reference to an entity that does not exist
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Msg: msg}
}

// As extracts an *Error from err's chain
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
