package padding

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Justify selects which side of the value the text sits on.
type Justify int

const (
	// Left puts the value first and pads on the right.
	Left Justify = iota
	// Right pads on the left.
	Right
)

// ParseJustify accepts "left" and "right". An empty name is Left.
func ParseJustify(name string) (Justify, error) {
	switch strings.ToLower(name) {
	case "", "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Left, fmt.Errorf("unknown justify %q", name)
	}
}

func (j Justify) String() string {
	if j == Right {
		return "right"
	}

	return "left"
}

// LengthError is returned by Pad when a value does not fit.
type LengthError struct {
	Value  string
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("value %q exceeds padded length %d", e.Value, e.Length)
}

// Padder pads values to Length characters. The zero Char pads with spaces.
type Padder struct {
	Length   int
	Char     rune
	Justify  Justify
	Truncate bool
}

func (p Padder) char() rune {
	if p.Char == 0 {
		return ' '
	}

	return p.Char
}

// Pad returns value padded to exactly Length characters. A value longer than
// Length is cut to its first Length characters when Truncate is set and is a
// *LengthError otherwise.
func (p Padder) Pad(value string) (string, error) {
	n := utf8.RuneCountInString(value)

	if n > p.Length {
		if !p.Truncate {
			return "", &LengthError{Value: value, Length: p.Length}
		}

		return string([]rune(value)[:p.Length]), nil
	}

	fill := strings.Repeat(string(p.char()), p.Length-n)

	if p.Justify == Right {
		return fill + value, nil
	}

	return value + fill, nil
}

// Unpad strips the padding character from the padded side of text. Text made
// only of padding unpads to "", except zeros padded on the left which unpad
// to "0".
func (p Padder) Unpad(text string) string {
	c := p.char()

	var value string
	if p.Justify == Right {
		value = strings.TrimLeft(text, string(c))
	} else {
		value = strings.TrimRight(text, string(c))
	}

	if value == "" && text != "" && c == '0' && p.Justify == Right {
		return "0"
	}

	return value
}
