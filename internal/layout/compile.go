package layout

import (
	"errors"

	"record-mapper/internal/diagnostic"
	"record-mapper/internal/mapping"
)

// Compile resolves every record of a stream. Problems in all records are
// reported together in one *diagnostic.CompileError.
func Compile(def *mapping.StreamDef) (*Stream, error) {
	if def == nil {
		return nil, errors.New("stream definition is required")
	}

	diags := mapping.ValidateStream(def)
	if diags.HasErrors() {
		return nil, diags.Err()
	}

	format, err := def.RecordFormat()
	if err != nil {
		return nil, err
	}

	s := &Stream{
		Name:     def.Name,
		Format:   format,
		Decl:     def,
		Warnings: diags.Warnings,
	}

	failed := &diagnostic.Diagnostics{}

	for i := range def.Records {
		rec, err := Preprocess(format, &def.Records[i])
		if err != nil {
			var ce *diagnostic.CompileError
			if !errors.As(err, &ce) {
				return nil, err
			}

			failed.Merge(ce.Diagnostics)

			continue
		}

		s.Records = append(s.Records, rec)
	}

	if failed.HasErrors() {
		return nil, failed.Err()
	}

	return s, nil
}

// CompileAll validates a layout file and compiles all of its streams.
func CompileAll(lf *mapping.LayoutFile) ([]*Stream, error) {
	diags := mapping.Validate(lf)
	if diags.HasErrors() {
		return nil, diags.Err()
	}

	streams := make([]*Stream, 0, len(lf.Streams))
	failed := &diagnostic.Diagnostics{}

	for i := range lf.Streams {
		s, err := Compile(&lf.Streams[i])
		if err != nil {
			var ce *diagnostic.CompileError
			if !errors.As(err, &ce) {
				return nil, err
			}

			failed.Merge(ce.Diagnostics)

			continue
		}

		streams = append(streams, s)
	}

	if failed.HasErrors() {
		return nil, failed.Err()
	}

	return streams, nil
}
