package atom

import (
	"errors"
	"fmt"
)

// Validation failure kinds. Every validator failure wraps exactly one of
// these; match with errors.Is.
var (
	ErrMissingField     = errors.New("atom: missing required field")
	ErrInvalidType      = errors.New("atom: invalid type")
	ErrInvalidFormat    = errors.New("atom: invalid format")
	ErrConstraint       = errors.New("atom: structural constraint violation")
	ErrUnsupportedValue = errors.New("atom: unsupported value")
)

// FieldError reports which field failed validation and why. It unwraps to
// one of the kind sentinels above.
type FieldError struct {
	Field  string
	Kind   error
	Reason string
}

func (e FieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Field)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Reason)
}

func (e FieldError) Unwrap() error { return e.Kind }

func missingField(field string) error {
	return FieldError{Field: field, Kind: ErrMissingField}
}

func invalidFormat(field, reason string) error {
	return FieldError{Field: field, Kind: ErrInvalidFormat, Reason: reason}
}

func constraint(field, reason string) error {
	return FieldError{Field: field, Kind: ErrConstraint, Reason: reason}
}
