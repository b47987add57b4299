package stream

import "fmt"

// UnidentifiedRecordError is returned for a record that matches none of the
// stream's record definitions.
type UnidentifiedRecordError struct {
	Line int
	Text string
}

func (e *UnidentifiedRecordError) Error() string {
	return fmt.Sprintf("line %d: unidentified record", e.Line)
}

// RecordError wraps an error converting the values of an identified record.
type RecordError struct {
	Record string
	Line   int
	Err    error
}

func (e *RecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}

	return e.Err.Error()
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
