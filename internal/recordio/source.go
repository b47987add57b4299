package recordio

import (
	"bufio"
	"io"
)

// Source is a character source with single-rune pull reads, unread and
// mark/reset lookahead.
type Source struct {
	in io.RuneReader
	// pending is a stack of runes to deliver before reading from in; the
	// last element is delivered next.
	pending []rune
	history []rune
	marked  bool
}

// NewSource wraps r. Readers that already implement io.RuneReader are used
// directly, anything else is buffered.
func NewSource(r io.Reader) *Source {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}

	return &Source{in: rr}
}

// ReadRune returns the next rune, or io.EOF at the end of input.
func (s *Source) ReadRune() (rune, error) {
	var c rune

	if n := len(s.pending); n > 0 {
		c = s.pending[n-1]
		s.pending = s.pending[:n-1]
	} else {
		r, _, err := s.in.ReadRune()
		if err != nil {
			return 0, err
		}

		c = r
	}

	if s.marked {
		s.history = append(s.history, c)
	}

	return c, nil
}

// Unread pushes c back so that it is returned by the next ReadRune.
// Runes must be unread in the reverse order they were read.
func (s *Source) Unread(c rune) {
	s.pending = append(s.pending, c)

	if s.marked && len(s.history) > 0 {
		s.history = s.history[:len(s.history)-1]
	}
}

// Peek returns the next rune without consuming it.
func (s *Source) Peek() (rune, error) {
	c, err := s.ReadRune()
	if err != nil {
		return 0, err
	}

	s.Unread(c)

	return c, nil
}

// Mark starts recording consumed runes so that Reset can replay them.
// Marks do not nest; a second Mark discards the first.
func (s *Source) Mark() {
	s.marked = true
	s.history = s.history[:0]
}

// Reset rewinds the source to the last Mark.
func (s *Source) Reset() {
	for i := len(s.history) - 1; i >= 0; i-- {
		s.pending = append(s.pending, s.history[i])
	}

	s.Unmark()
}

// Unmark drops the last Mark without rewinding.
func (s *Source) Unmark() {
	s.marked = false
	s.history = s.history[:0]
}
