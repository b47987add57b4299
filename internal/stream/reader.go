package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"record-mapper/internal/logctx"
	"record-mapper/internal/mapping"
	"record-mapper/internal/parser"
	"record-mapper/internal/recordio"
)

// Record is one record read from a stream.
type Record struct {
	// Name is the record definition the record was identified as.
	Name string
	// Line is the physical line the record starts on.
	Line int
	// Text is the record text without its terminator.
	Text   string
	Values parser.Values
}

// Reader reads typed records.
type Reader struct {
	name    string
	logger  *slog.Logger
	src     io.Reader
	tokens  recordio.RecordReader
	parsers *parser.Stream
	ignore  bool
	skipped int
}

// NewReader compiles def and returns a Reader over r, decoded from the
// stream's charset. Closing the Reader closes r if it is an io.Closer.
func NewReader(ctx context.Context, def *mapping.StreamDef, r io.Reader) (*Reader, error) {
	parsers, err := parser.CompileDef(def)
	if err != nil {
		return nil, err
	}

	return NewReaderFor(ctx, parsers, r)
}

// NewReaderFor returns a Reader for a stream compiled beforehand.
func NewReaderFor(ctx context.Context, parsers *parser.Stream, r io.Reader) (*Reader, error) {
	def := parsers.Layout.Decl

	enc, err := recordio.LookupEncoding(def.Encoding)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", def.Name, err)
	}

	// The tokenizer must not close r; Close does that once.
	in := struct{ io.Reader }{recordio.DecodeReader(r, enc)}

	tokens, err := newTokenReader(parsers.Format, &def.Parser, in)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", def.Name, err)
	}

	return &Reader{
		name:    def.Name,
		logger:  logctx.FromContext(ctx).With(slog.String("stream", def.Name)),
		src:     r,
		tokens:  tokens,
		parsers: parsers,
		ignore:  def.IgnoreUnidentifiedRecords,
	}, nil
}

// Read returns the next record, or io.EOF. Malformed text is a
// *recordio.RecordIOError, a record matching no definition is an
// *UnidentifiedRecordError and a field that cannot be converted is a
// *RecordError. After any of these the next Read continues with the
// following record.
func (r *Reader) Read() (*Record, error) {
	for {
		fields, err := r.tokens.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}

			return nil, err
		}

		line := r.tokens.RecordLineNumber()

		p := r.parsers.Identify(fields)
		if p == nil {
			if r.ignore {
				r.skipped++
				r.logger.Debug("skipping unidentified record", slog.Int("line", line))

				continue
			}

			return nil, &UnidentifiedRecordError{Line: line, Text: r.tokens.RecordText()}
		}

		values, err := p.Unmarshal(fields)
		if err != nil {
			return nil, &RecordError{Record: p.Name(), Line: line, Err: err}
		}

		return &Record{
			Name:   p.Name(),
			Line:   line,
			Text:   r.tokens.RecordText(),
			Values: values,
		}, nil
	}
}

// Skipped returns the number of unidentified records ignored so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Close closes the tokenizer and the underlying reader.
func (r *Reader) Close() error {
	if err := r.tokens.Close(); err != nil {
		return err
	}

	return recordio.CloseReader(r.src)
}
