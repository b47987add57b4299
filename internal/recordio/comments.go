package recordio

import (
	"io"
	"strings"
)

// SkipComments consumes consecutive lines that begin with one of prefixes and
// returns how many physical lines were dropped. The source is left positioned
// at the first rune of the next non-comment line.
func SkipComments(src *Source, prefixes []string, eol LineEnd) (int, error) {
	if len(prefixes) == 0 {
		return 0, nil
	}

	skipped := 0

	for {
		ok, err := startsWithAny(src, prefixes)
		if err != nil || !ok {
			return skipped, err
		}

		for {
			c, err := src.ReadRune()
			if err == io.EOF {
				return skipped + 1, nil
			}

			if err != nil {
				return skipped, err
			}

			term, err := eol.Match(src, c)
			if err != nil {
				return skipped, err
			}

			if term != "" {
				break
			}
		}

		skipped++
	}
}

// startsWithAny looks ahead without consuming anything.
func startsWithAny(src *Source, prefixes []string) (bool, error) {
	longest := 0
	for _, p := range prefixes {
		longest = max(longest, len([]rune(p)))
	}

	src.Mark()
	defer src.Reset()

	var head strings.Builder

	for range longest {
		c, err := src.ReadRune()
		if err == io.EOF {
			break
		}

		if err != nil {
			return false, err
		}

		head.WriteRune(c)
	}

	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(head.String(), p) {
			return true, nil
		}
	}

	return false, nil
}
