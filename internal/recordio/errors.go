package recordio

import (
	"fmt"
	"strings"
)

// RecordIOError is raised for malformed input (unterminated quotes, stray
// characters outside a quoted field, dangling line continuations) and for
// failures of the underlying character source or sink. Line is the starting
// line number of the offending record, or 0 when unknown.
type RecordIOError struct {
	Line int
	Msg  string
	// Err is the underlying I/O failure, nil for malformed input.
	Err error
}

// Malformed builds a RecordIOError for bad input on the given line.
func Malformed(line int, format string, args ...any) *RecordIOError {
	return &RecordIOError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// WrapIO wraps a failure of the underlying reader or writer.
func WrapIO(line int, op string, err error) *RecordIOError {
	return &RecordIOError{Line: line, Msg: op + " failed", Err: err}
}

func (e *RecordIOError) Error() string {
	var b strings.Builder

	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}

	b.WriteString(e.Msg)

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *RecordIOError) Unwrap() error {
	return e.Err
}

// IsMalformed returns true if the error describes bad input rather than a
// failed read or write.
func (e *RecordIOError) IsMalformed() bool {
	return e.Err == nil
}

// ConfigError reports an invalid tokenizer configuration. It is returned by
// constructors and never from Read or Write.
type ConfigError struct {
	// Setting names the offending configuration setting.
	Setting string
	Msg     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Setting, e.Msg)
}

// CheckDistinct returns a ConfigError if two named characters are equal.
// A zero rune means "not configured" and never collides.
func CheckDistinct(nameA string, a rune, nameB string, b rune) error {
	if a == 0 || b == 0 || a != b {
		return nil
	}

	return &ConfigError{
		Setting: nameA,
		Msg:     fmt.Sprintf("%s and %s cannot both be %q", nameA, nameB, a),
	}
}

// CheckNotLineEnd returns a ConfigError if c is a carriage return or line feed.
func CheckNotLineEnd(name string, c rune) error {
	if c == '\r' || c == '\n' {
		return &ConfigError{Setting: name, Msg: fmt.Sprintf("%s cannot be a line terminator character", name)}
	}

	return nil
}
