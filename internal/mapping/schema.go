package mapping

import (
	"fmt"

	"record-mapper/internal/recordio"
)

// LayoutFile represents the root of a YAML layout file.
type LayoutFile struct {
	// Version of the layout schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	Streams []StreamDef `yaml:"streams"`
}

// Stream returns the stream with the given name, or nil.
func (lf *LayoutFile) Stream(name string) *StreamDef {
	for i := range lf.Streams {
		if lf.Streams[i].Name == name {
			return &lf.Streams[i]
		}
	}

	return nil
}

// StreamDef declares one flat-file stream.
type StreamDef struct {
	Name string `yaml:"name"`

	// Format is csv, delimited or fixedlength.
	Format string `yaml:"format"`

	// Encoding is an IANA charset name. Empty means UTF-8.
	Encoding string `yaml:"encoding,omitempty"`

	// IgnoreUnidentifiedRecords skips records that match no record
	// definition instead of failing.
	IgnoreUnidentifiedRecords bool `yaml:"ignoreUnidentifiedRecords,omitempty"`

	Parser ParserDef `yaml:"parser,omitempty"`

	Records []RecordDef `yaml:"records"`
}

// RecordFormat parses Format.
func (s *StreamDef) RecordFormat() (recordio.Format, error) {
	f, err := recordio.ParseFormat(s.Format)
	if err != nil {
		return 0, fmt.Errorf("stream %q: %w", s.Name, err)
	}

	return f, nil
}

// Record returns the record with the given name, or nil.
func (s *StreamDef) Record(name string) *RecordDef {
	for i := range s.Records {
		if s.Records[i].Name == name {
			return &s.Records[i]
		}
	}

	return nil
}

// ParserDef holds tokenizer settings. Settings that do not apply to the
// stream's format are reported as warnings by Validate.
type ParserDef struct {
	// Delimiter defaults to ',' for csv and tab for delimited.
	Delimiter Char `yaml:"delimiter,omitempty"`
	// Quote defaults to '"' (csv only).
	Quote Char `yaml:"quote,omitempty"`
	// Escape defaults to the quote for csv and to none for delimited.
	Escape Char `yaml:"escape,omitempty"`
	// LineContinuation is optional (delimited and fixedlength).
	LineContinuation Char `yaml:"lineContinuation,omitempty"`
	// RecordTerminator is written after each record. When nil, csv writes
	// "\n" and the others read any of CR, LF and CRLF and write "\n".
	RecordTerminator *string `yaml:"recordTerminator,omitempty"`
	Comments         []string `yaml:"comments,omitempty"`

	// csv only
	Multiline             bool `yaml:"multiline,omitempty"`
	WhitespaceAllowed     bool `yaml:"whitespaceAllowed,omitempty"`
	UnquotedQuotesAllowed bool `yaml:"unquotedQuotesAllowed,omitempty"`
	AlwaysQuote           bool `yaml:"alwaysQuote,omitempty"`
}

// RecordDef declares one kind of record.
type RecordDef struct {
	Name   string        `yaml:"name"`
	Fields []PropertyDef `yaml:"fields"`
}

// PropertyDef declares a field, a segment (a property with nested fields) or
// a constant.
type PropertyDef struct {
	Name string `yaml:"name"`

	// Type is a primitive kind name such as int or string. Empty is string.
	Type string `yaml:"type,omitempty"`
	// Format is passed to the type handler, e.g. a time layout.
	Format string `yaml:"format,omitempty"`

	// Position is the 0-based character offset (fixedlength) or field index
	// (csv, delimited). Negative positions count from the end of the record.
	Position *int `yaml:"position,omitempty"`
	// Length is the width of a fixedlength field, or unbounded.
	Length Bound `yaml:"length,omitempty"`
	// Until marks where an indeterminate component ends, relative to the end
	// of the record. It must be zero or negative.
	Until *int `yaml:"until,omitempty"`

	MinOccurs *int  `yaml:"minOccurs,omitempty"`
	MaxOccurs Bound `yaml:"maxOccurs,omitempty"`
	// OccursRef is the path of an integer field holding the number of
	// occurrences.
	OccursRef string `yaml:"occursRef,omitempty"`

	Padding  Char   `yaml:"padding,omitempty"`
	Justify  string `yaml:"justify,omitempty"`
	Truncate bool   `yaml:"truncate,omitempty"`
	// Trim strips surrounding whitespace before conversion.
	Trim bool `yaml:"trim,omitempty"`
	// Required rejects empty field text.
	Required bool `yaml:"required,omitempty"`

	// RID marks a record identifying field, matched by Literal or Regex.
	RID     bool   `yaml:"rid,omitempty"`
	Literal string `yaml:"literal,omitempty"`
	Regex   string `yaml:"regex,omitempty"`

	Default *string `yaml:"default,omitempty"`
	// Constant is a value bound without reading or writing any text.
	Constant *string `yaml:"constant,omitempty"`

	// Segment forces a segment even without nested fields.
	Segment bool          `yaml:"segment,omitempty"`
	Fields  []PropertyDef `yaml:"fields,omitempty"`
}

// IsSegment returns true if the property groups other properties.
func (p *PropertyDef) IsSegment() bool {
	return p.Segment || len(p.Fields) > 0
}

// IsConstant returns true if the property carries a constant value.
func (p *PropertyDef) IsConstant() bool {
	return p.Constant != nil
}
