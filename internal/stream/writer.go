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

// Writer writes typed records.
type Writer struct {
	logger  *slog.Logger
	dst     io.Writer
	enc     io.WriteCloser
	tokens  recordio.RecordWriter
	parsers *parser.Stream
	written int
}

// NewWriter compiles def and returns a Writer over w, encoded to the
// stream's charset. Closing the Writer closes w if it is an io.Closer.
func NewWriter(ctx context.Context, def *mapping.StreamDef, w io.Writer) (*Writer, error) {
	parsers, err := parser.CompileDef(def)
	if err != nil {
		return nil, err
	}

	return NewWriterFor(ctx, parsers, w)
}

// NewWriterFor returns a Writer for a stream compiled beforehand.
func NewWriterFor(ctx context.Context, parsers *parser.Stream, w io.Writer) (*Writer, error) {
	def := parsers.Layout.Decl

	enc, err := recordio.LookupEncoding(def.Encoding)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", def.Name, err)
	}

	out := recordio.EncodeWriter(w, enc)

	// Hide Close from the tokenizer so the encoder is flushed exactly once.
	tokens, err := newTokenWriter(parsers.Format, &def.Parser, struct{ io.Writer }{out})
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", def.Name, err)
	}

	return &Writer{
		logger:  logctx.FromContext(ctx).With(slog.String("stream", def.Name)),
		dst:     w,
		enc:     out,
		tokens:  tokens,
		parsers: parsers,
	}, nil
}

// Write formats values as the named record.
func (w *Writer) Write(name string, values parser.Values) error {
	p := w.parsers.Record(name)
	if p == nil {
		return fmt.Errorf("stream %q: unknown record %q", w.parsers.Name, name)
	}

	fields, err := p.Marshal(values)
	if err != nil {
		return &RecordError{Record: name, Err: err}
	}

	if err := w.tokens.Write(fields); err != nil {
		return err
	}

	w.written++

	return nil
}

// Flush writes buffered records to the underlying writer.
func (w *Writer) Flush() error {
	return w.tokens.Flush()
}

// Close flushes buffered records and closes the underlying writer.
func (w *Writer) Close() error {
	err := w.tokens.Close()
	err = errors.Join(err, w.enc.Close())
	err = errors.Join(err, recordio.CloseWriter(w.dst))

	w.logger.Debug("stream closed", slog.Int("records", w.written))

	return err
}
