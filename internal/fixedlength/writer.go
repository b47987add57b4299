package fixedlength

import (
	"bufio"
	"io"
	"strings"

	"record-mapper/internal/recordio"
)

// Writer writes fixed-length lines to a character sink.
type Writer struct {
	cfg    Config
	out    io.Writer
	buf    *bufio.Writer
	closed bool
}

var _ recordio.RecordWriter = (*Writer)(nil)

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer, cfg Config) (*Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Writer{cfg: cfg, out: w, buf: bufio.NewWriter(w)}, nil
}

// Write concatenates the already padded fields into one line.
func (w *Writer) Write(fields []string) error {
	if w.closed {
		return recordio.WrapIO(0, "write", io.ErrClosedPipe)
	}

	for _, f := range fields {
		if _, err := w.buf.WriteString(f); err != nil {
			return recordio.WrapIO(0, "write", err)
		}
	}

	if _, err := w.buf.WriteString(w.cfg.terminator()); err != nil {
		return recordio.WrapIO(0, "write", err)
	}

	recordio.CountWritten(recordio.FormatFixedLength)

	return nil
}

func (w *Writer) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return recordio.WrapIO(0, "flush", err)
	}

	return nil
}

func (w *Writer) Close() error {
	if w.closed {
		return nil
	}

	w.closed = true

	if err := w.Flush(); err != nil {
		return err
	}

	return recordio.CloseWriter(w.out)
}

// RecordParser marshals and unmarshals single fixed-length lines.
type RecordParser struct{}

var (
	_ recordio.RecordMarshaller   = RecordParser{}
	_ recordio.RecordUnmarshaller = RecordParser{}
)

// Marshal concatenates fields.
func (RecordParser) Marshal(fields []string) (string, error) {
	return strings.Join(fields, ""), nil
}

// Unmarshal returns text as the record's only element.
func (RecordParser) Unmarshal(text string) ([]string, error) {
	return []string{text}, nil
}
