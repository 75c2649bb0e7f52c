package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is wrapped by every ValidationErrors value.
var ErrValidation = errors.New("validation failed")

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors accumulates field errors during validation.
type ValidationErrors struct {
	Errors []FieldError
}

// AddMessage records a validation failure for field.
func (v *ValidationErrors) AddMessage(field, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

// Err returns nil when no errors were recorded.
func (v *ValidationErrors) Err() error {
	if v == nil || len(v.Errors) == 0 {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	parts := make([]string, 0, len(v.Errors))
	for _, fieldErr := range v.Errors {
		parts = append(parts, fieldErr.Error())
	}
	return strings.Join(parts, "; ")
}

// Unwrap lets callers match with errors.Is(err, ErrValidation).
func (v *ValidationErrors) Unwrap() error {
	return ErrValidation
}
