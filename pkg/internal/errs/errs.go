// Package errs defines the error taxonomy shared by services and handlers.
package errs

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a missing row; wrap it with context via NotFound.
var ErrNotFound = errors.New("not found")

// NotFound wraps ErrNotFound with the entity name and id.
func NotFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// ValidationError carries field-level validation failures. No partial write
// happens when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// NewValidationFields builds a ValidationError from a field->message map.
func NewValidationFields(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ConflictError marks a uniqueness violation (or an in-use row blocking a
// delete), surfaced with the offending field.
type ConflictError struct {
	Field string
	Msg   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Field, e.Msg)
}

// NewConflict builds a ConflictError.
func NewConflict(field, msg string) *ConflictError {
	return &ConflictError{Field: field, Msg: msg}
}

// AsValidation extracts a *ValidationError when err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)

	return ve, ok
}

// AsConflict extracts a *ConflictError when err is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	ok := errors.As(err, &ce)

	return ce, ok
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
