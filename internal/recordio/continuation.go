package recordio

import (
	"errors"
	"io"
)

// ErrDanglingContinuation is returned by MatchContinuation when the input ends
// right after a line continuation.
var ErrDanglingContinuation = errors.New("unexpected end of stream after line continuation")

// MatchContinuation is called after a line continuation character was read.
// If a record terminator follows, it is consumed and its text returned.
// Otherwise "" is returned and src is left untouched.
//
// A continuation followed by the end of input, directly or after its
// terminator, returns ErrDanglingContinuation together with whatever
// terminator text was consumed.
func MatchContinuation(src *Source, eol LineEnd) (string, error) {
	next, err := src.ReadRune()
	if err == io.EOF {
		return "", ErrDanglingContinuation
	}

	if err != nil {
		return "", err
	}

	term, err := eol.Match(src, next)
	if err != nil {
		return "", err
	}

	if term == "" {
		src.Unread(next)
		return "", nil
	}

	if _, err := src.Peek(); err != nil {
		if err == io.EOF {
			return term, ErrDanglingContinuation
		}

		return term, err
	}

	return term, nil
}
