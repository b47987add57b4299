package parser

import (
	"errors"
	"fmt"

	"record-mapper/internal/layout"
	"record-mapper/internal/mapping"
	"record-mapper/internal/recordio"
)

// Stream holds the record parsers of one stream in declaration order.
type Stream struct {
	Name    string
	Format  recordio.Format
	Layout  *layout.Stream
	Records []*RecordParser
}

// Compile builds the record parsers of a compiled stream.
func Compile(s *layout.Stream) (*Stream, error) {
	if s == nil {
		return nil, errors.New("compiled stream is required")
	}

	out := &Stream{
		Name:    s.Name,
		Format:  s.Format,
		Layout:  s,
		Records: make([]*RecordParser, 0, len(s.Records)),
	}

	for _, rec := range s.Records {
		p, err := NewRecordParser(rec)
		if err != nil {
			return nil, fmt.Errorf("stream %q: %w", s.Name, err)
		}

		out.Records = append(out.Records, p)
	}

	return out, nil
}

// CompileDef compiles the layout of a stream definition and builds its
// parsers.
func CompileDef(def *mapping.StreamDef) (*Stream, error) {
	s, err := layout.Compile(def)
	if err != nil {
		return nil, err
	}

	return Compile(s)
}

// Identify returns the first record parser that matches tokens, or nil.
func (s *Stream) Identify(tokens []string) *RecordParser {
	for _, p := range s.Records {
		if p.Matches(tokens) {
			return p
		}
	}

	return nil
}

// Record returns the parser of the named record, or nil.
func (s *Stream) Record(name string) *RecordParser {
	for _, p := range s.Records {
		if p.Name() == name {
			return p
		}
	}

	return nil
}
