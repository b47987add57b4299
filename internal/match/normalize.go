package match

import (
	"strings"
	"unicode"
)

// NormalizeName folds a name to lower case and drops separators, so that
// "recordCount", "record_count" and "Record-Count" compare equal.
func NormalizeName(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
