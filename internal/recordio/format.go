package recordio

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Format -linecomment -output=format_string.go

// Format identifies a flat record format.
type Format int

const (
	_ Format = iota // zero value is an invalid format

	FormatCSV         // csv
	FormatDelimited   // delimited
	FormatFixedLength // fixedlength
)

// ParseFormat resolves a format name as written in a layout file.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "delimited":
		return FormatDelimited, nil
	case "fixedlength", "fixed-length", "fixed":
		return FormatFixedLength, nil
	default:
		return 0, fmt.Errorf("unknown record format %q", name)
	}
}

// IsValid returns true if f is one of the known formats.
func (f Format) IsValid() bool {
	return f >= FormatCSV && f <= FormatFixedLength
}

// FieldsAreTokens returns true if a field occupies exactly one token of the
// record, as opposed to a run of characters.
func (f Format) FieldsAreTokens() bool {
	return f == FormatCSV || f == FormatDelimited
}

// FormatNames returns the canonical format names.
func FormatNames() []string {
	return []string{FormatCSV.String(), FormatDelimited.String(), FormatFixedLength.String()}
}
