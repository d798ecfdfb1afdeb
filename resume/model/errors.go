package model

import "fmt"

// Constraint identifiers reported by ValidationError.
const (
	ConstraintRequired  = "required"
	ConstraintMinLength = "min_length"
	ConstraintMaxLength = "max_length"
	ConstraintEmail     = "email_format"
	ConstraintPhone     = "phone_format"
	ConstraintType      = "type"
)

// ValidationError reports the first field of a candidate record that
// violates a constraint. It is caller-correctable.
type ValidationError struct {
	Field      string
	Constraint string
	Param      string
	Cause      error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation failed: %s: %s", e.Field, e.Constraint)
	if e.Param != "" {
		msg += " " + e.Param
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
