// Package apperr is the error taxonomy shared by the service and HTTP layers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kinds. Every error the service returns wraps exactly one of these.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrSchema     = errors.New("schema missing")
	ErrStorage    = errors.New("storage failure")
)

// Error carries a kind, the message shown to clients and an optional cause.
type Error struct {
	Kind error
	Msg  string
	// Exists is set on save-result conflicts where the natural key already exists.
	Exists bool
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Validation(msg string) error { return &Error{Kind: ErrValidation, Msg: msg} }

func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Msg: msg} }

// Conflict reports a uniqueness violation. exists marks the save-result case
// where the caller may retry with overwrite.
func Conflict(msg string, exists bool) error {
	return &Error{Kind: ErrConflict, Msg: msg, Exists: exists}
}

// Schema reports a missing table along with how to create it.
func Schema(table string, cause error) error {
	return &Error{
		Kind: ErrSchema,
		Msg:  fmt.Sprintf("%s table does not exist. Run the admin initdb command first.", table),
		Err:  cause,
	}
}

// Storage wraps any other store failure; the driver message is passed through.
func Storage(cause error) error {
	return &Error{Kind: ErrStorage, Err: cause}
}

// Status maps err onto an HTTP status code.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Exists reports whether err is a conflict on an existing natural key.
func Exists(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Exists
}
