package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// BindingErrorMessage turns a gin binding failure into the message the
// frontend expects. Any missing required field collapses to the shared
// "All fields are required" message; other rule failures are spelled
// out per field.
func BindingErrorMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return "Invalid request format"
	}

	for _, e := range fieldErrors {
		if e.Tag() == "required" {
			return "All fields are required"
		}
	}

	if len(fieldErrors) > 0 {
		return formatValidationError(fieldErrors[0])
	}
	return "Invalid request format"
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
