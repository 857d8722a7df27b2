package fighter

import (
	"errors"
	"fmt"
)

// ErrValidation matches every error produced at the attribute-map boundary.
var ErrValidation = errors.New("fighter: invalid state")

// MissingFieldError reports an attribute key absent from a state map.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("fighter: missing field %q", e.Field)
}

// Is reports ErrValidation as a match.
func (e *MissingFieldError) Is(target error) bool { return target == ErrValidation }

// TypeMismatchError reports an attribute whose value has the wrong type.
type TypeMismatchError struct {
	Field string
	Want  string
	Got   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("fighter: field %q must be %s, got %s", e.Field, e.Want, e.Got)
}

// Is reports ErrValidation as a match.
func (e *TypeMismatchError) Is(target error) bool { return target == ErrValidation }
