package mapping

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const unboundedText = "unbounded"

// Bound is a count or width that may be unbounded. In YAML it is a
// non-negative integer or the word "unbounded". The zero value is unset.
type Bound struct {
	n         int
	unbounded bool
	set       bool
}

// Count returns a Bound of exactly n.
func Count(n int) Bound {
	return Bound{n: n, set: true}
}

// Unbounded returns the unbounded Bound.
func Unbounded() Bound {
	return Bound{unbounded: true, set: true}
}

// IsZero reports an unset Bound, for omitempty.
func (b Bound) IsZero() bool {
	return !b.set
}

// IsUnbounded returns true for "unbounded".
func (b Bound) IsUnbounded() bool {
	return b.unbounded
}

// Value returns the count, or unbounded when the Bound is unbounded.
func (b Bound) Value(unbounded int) int {
	if b.unbounded {
		return unbounded
	}

	return b.n
}

func (b Bound) String() string {
	switch {
	case !b.set:
		return ""
	case b.unbounded:
		return unboundedText
	default:
		return strconv.Itoa(b.n)
	}
}

// UnmarshalYAML accepts an integer or "unbounded".
func (b *Bound) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected integer or %q, got %v", node.Line, unboundedText, node.Kind)
	}

	if node.Value == unboundedText {
		*b = Unbounded()
		return nil
	}

	n, err := strconv.Atoi(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: expected integer or %q, got %q", node.Line, unboundedText, node.Value)
	}

	if n < 0 {
		return fmt.Errorf("line %d: %d is negative", node.Line, n)
	}

	*b = Count(n)

	return nil
}

// MarshalYAML writes an integer or "unbounded".
func (b Bound) MarshalYAML() (any, error) {
	if b.unbounded {
		return unboundedText, nil
	}

	return b.n, nil
}

// Char is a single character setting, written in YAML as a one-character
// string. The zero value is unset.
type Char rune

var errNotSingleChar = errors.New("expected a single character")

// UnmarshalYAML accepts a string holding exactly one character.
func (c *Char) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w, got %v", node.Line, errNotSingleChar, node.Kind)
	}

	s := node.Value
	if utf8.RuneCountInString(s) != 1 {
		return fmt.Errorf("line %d: %w, got %q", node.Line, errNotSingleChar, s)
	}

	r, _ := utf8.DecodeRuneInString(s)
	*c = Char(r)

	return nil
}

// MarshalYAML writes the character as a string.
func (c Char) MarshalYAML() (any, error) {
	return string(rune(c)), nil
}

// Or returns c, or def when c is unset.
func (c Char) Or(def rune) rune {
	if c == 0 {
		return def
	}

	return rune(c)
}
