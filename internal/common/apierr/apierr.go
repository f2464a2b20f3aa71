// Package apierr holds the error types shared by the in-memory stores.
// Each type carries the HTTP status it maps to.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e ValidationError) StatusCode() int { return http.StatusBadRequest }

// Invalid returns a ValidationError for field.
func Invalid(field, reason string) error {
	return ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err (or anything it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// NotFoundError reports a lookup of an unknown record.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string { return e.Kind + " not found: " + e.ID }

func (e NotFoundError) StatusCode() int { return http.StatusNotFound }

// NotFound returns a NotFoundError for a record of kind.
func NotFound(kind, id string) error { return NotFoundError{Kind: kind, ID: id} }

// IsNotFound reports whether err (or anything it wraps) is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// ConflictError reports an input that clashes with an existing record.
type ConflictError struct{ Msg string }

func (e ConflictError) Error() string { return e.Msg }

func (e ConflictError) StatusCode() int { return http.StatusConflict }

// Conflict returns a ConflictError.
func Conflict(format string, args ...any) error {
	return ConflictError{Msg: fmt.Sprintf(format, args...)}
}
