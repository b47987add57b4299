package delimited

import (
	"bufio"
	"io"
	"strings"

	"record-mapper/internal/recordio"
)

// Writer writes delimited records to a character sink.
type Writer struct {
	parser *RecordParser
	out    io.Writer
	buf    *bufio.Writer
	closed bool
}

var _ recordio.RecordWriter = (*Writer)(nil)

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer, cfg Config) (*Writer, error) {
	p, err := NewRecordParser(cfg)
	if err != nil {
		return nil, err
	}

	return &Writer{parser: p, out: w, buf: bufio.NewWriter(w)}, nil
}

// Write formats fields as one record followed by the record terminator.
func (w *Writer) Write(fields []string) error {
	if w.closed {
		return recordio.WrapIO(0, "write", io.ErrClosedPipe)
	}

	w.parser.format(w.buf, fields)

	if _, err := w.buf.WriteString(w.parser.cfg.terminator()); err != nil {
		return recordio.WrapIO(0, "write", err)
	}

	recordio.CountWritten(recordio.FormatDelimited)

	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return recordio.WrapIO(0, "flush", err)
	}

	return nil
}

// Close flushes and closes the underlying writer if it is an io.Closer.
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

// RecordParser marshals and unmarshals single delimited records held in
// strings. It is safe for concurrent use.
type RecordParser struct {
	cfg Config
}

var (
	_ recordio.RecordMarshaller   = (*RecordParser)(nil)
	_ recordio.RecordUnmarshaller = (*RecordParser)(nil)
)

// NewRecordParser validates cfg and returns a RecordParser.
func NewRecordParser(cfg Config) (*RecordParser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &RecordParser{cfg: cfg}, nil
}

// Marshal joins fields with the delimiter, escaping where configured.
func (p *RecordParser) Marshal(fields []string) (string, error) {
	var b strings.Builder

	p.format(&b, fields)

	return b.String(), nil
}

// Unmarshal splits text holding exactly one record.
func (p *RecordParser) Unmarshal(text string) ([]string, error) {
	if text == "" {
		return []string{""}, nil
	}

	cfg := p.cfg
	cfg.Comments = nil

	r, err := NewReader(strings.NewReader(text), cfg)
	if err != nil {
		return nil, err
	}

	fields, err := r.Read()
	if err != nil {
		return nil, err
	}

	if _, err := r.src.ReadRune(); err != io.EOF {
		return nil, recordio.Malformed(0, "record terminated before end of text")
	}

	return fields, nil
}

type stringWriter interface {
	WriteString(s string) (int, error)
	WriteRune(r rune) (int, error)
}

func (p *RecordParser) format(w stringWriter, fields []string) {
	cfg := p.cfg

	for i, f := range fields {
		if i > 0 {
			_, _ = w.WriteRune(cfg.Delimiter)
		}

		if cfg.Escape == 0 {
			_, _ = w.WriteString(f)
			continue
		}

		for _, c := range f {
			if c == cfg.Delimiter || c == cfg.Escape {
				_, _ = w.WriteRune(cfg.Escape)
			}

			_, _ = w.WriteRune(c)
		}
	}
}
