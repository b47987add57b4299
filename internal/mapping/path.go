package mapping

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// PropertyPath is a dotted path from a record to one of its properties.
type PropertyPath []string

func (p PropertyPath) String() string {
	return strings.Join(p, ".")
}

// Child returns a new path with name appended.
func (p PropertyPath) Child(name string) PropertyPath {
	out := make(PropertyPath, len(p), len(p)+1)
	copy(out, p)

	return append(out, name)
}

// ParsePath parses a dotted property path such as "header.count".
func ParsePath(path string) (PropertyPath, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}

	var segments PropertyPath

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}

		if !IsValidName(part) {
			return nil, fmt.Errorf("invalid path %q: invalid name %q", path, part)
		}

		segments = append(segments, part)
	}

	return segments, nil
}

// IsValidName checks that s can name a property: a letter or underscore
// followed by letters, digits, underscores or hyphens.
func IsValidName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}

			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}

	return true
}
