package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrRequired is reported for a required field with empty text.
	ErrRequired = errors.New("required field is empty")
	// ErrMissing is reported for a field that lies outside the record.
	ErrMissing = errors.New("field is missing")
	// ErrOccurrences is reported when a field or segment occurs too few or
	// too many times.
	ErrOccurrences = errors.New("wrong number of occurrences")
	// ErrLength is reported when the text of a repeated component does not
	// divide into whole occurrences.
	ErrLength = errors.New("wrong text length")
)

// FieldError is an error reading or writing one field of a record.
type FieldError struct {
	Record string
	// Field is the dotted path of the field or segment.
	Field string
	// Text is the field text, when known.
	Text string
	Err  error
}

func (e *FieldError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("record %q field %q: invalid text %q: %v", e.Record, e.Field, e.Text, e.Err)
	}

	return fmt.Sprintf("record %q field %q: %v", e.Record, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
