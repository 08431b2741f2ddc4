package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound covers both genuinely missing records and records the
	// caller is not allowed to see. Denials are never distinguishable
	// from absence.
	ErrNotFound = errors.New("not found")

	ErrDuplicate       = errors.New("already exists")
	ErrUnauthenticated = errors.New("authentication required")
)

// ValidationError carries field-level problems back to the submitter.
// No partial state is persisted when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
