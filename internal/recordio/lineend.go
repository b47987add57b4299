package recordio

import "io"

// LineEnd matches record terminators read from a Source. The zero value
// matches CR, LF and CRLF; a LineEnd built from a non-empty terminator
// matches that exact string only.
type LineEnd struct {
	term []rune
}

// NewLineEnd returns a LineEnd for terminator. An empty terminator gives the
// CR/LF/CRLF default.
func NewLineEnd(terminator string) LineEnd {
	return LineEnd{term: []rune(terminator)}
}

// IsDefault returns true if the LineEnd matches CR, LF and CRLF.
func (l LineEnd) IsDefault() bool {
	return len(l.term) == 0
}

// Match reports whether c, the rune just read from src, starts a record
// terminator. When it does, the rest of the terminator is consumed and the
// full terminator text is returned; otherwise "" is returned and src is left
// untouched.
func (l LineEnd) Match(src *Source, c rune) (string, error) {
	if l.IsDefault() {
		switch c {
		case '\n':
			return "\n", nil
		case '\r':
			next, err := src.ReadRune()
			if err != nil {
				if err == io.EOF {
					return "\r", nil
				}

				return "\r", err
			}

			if next == '\n' {
				return "\r\n", nil
			}

			src.Unread(next)

			return "\r", nil
		}

		return "", nil
	}

	if c != l.term[0] {
		return "", nil
	}

	read := make([]rune, 0, len(l.term)-1)

	for _, want := range l.term[1:] {
		next, err := src.ReadRune()
		if err != nil && err != io.EOF {
			unreadAll(src, read)
			return "", err
		}

		if err == io.EOF || next != want {
			if err == nil {
				read = append(read, next)
			}

			unreadAll(src, read)

			return "", nil
		}

		read = append(read, next)
	}

	return string(l.term), nil
}

func unreadAll(src *Source, runes []rune) {
	for i := len(runes) - 1; i >= 0; i-- {
		src.Unread(runes[i])
	}
}
