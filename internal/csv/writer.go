package csv

import (
	"bufio"
	"io"
	"strings"

	"record-mapper/internal/recordio"
)

// Writer writes CSV records to a character sink.
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
// Nothing is written when a field cannot be represented.
func (w *Writer) Write(fields []string) error {
	if w.closed {
		return recordio.WrapIO(0, "write", io.ErrClosedPipe)
	}

	if err := w.parser.check(fields); err != nil {
		return err
	}

	w.parser.format(w.buf, fields)

	if _, err := w.buf.WriteString(w.parser.cfg.RecordTerminator); err != nil {
		return recordio.WrapIO(0, "write", err)
	}

	recordio.CountWritten(recordio.FormatCSV)

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

// RecordParser marshals and unmarshals single CSV records held in strings.
// It is stateless and safe for concurrent use.
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

// Marshal formats fields as one record without a terminator.
func (p *RecordParser) Marshal(fields []string) (string, error) {
	if err := p.check(fields); err != nil {
		return "", err
	}

	var b strings.Builder

	p.format(&b, fields)

	return b.String(), nil
}

// Unmarshal parses text holding exactly one record. A trailing record
// terminator is accepted; any further text is an error.
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

// check rejects fields holding the quote when no escape character is
// configured: the reader has no way to take such a quote back.
func (p *RecordParser) check(fields []string) error {
	if p.cfg.Escape != 0 {
		return nil
	}

	for i, f := range fields {
		if strings.ContainsRune(f, p.cfg.Quote) {
			return recordio.Malformed(0, "field %d contains quote character %q and no escape character is configured",
				i+1, p.cfg.Quote)
		}
	}

	return nil
}

func (p *RecordParser) format(w stringWriter, fields []string) {
	for i, f := range fields {
		if i > 0 {
			_, _ = w.WriteRune(p.cfg.Delimiter)
		}

		if p.needsQuote(f, i == 0) {
			p.quote(w, f)
		} else {
			_, _ = w.WriteString(f)
		}
	}
}

func (p *RecordParser) needsQuote(f string, first bool) bool {
	if p.cfg.AlwaysQuote {
		return true
	}

	if strings.ContainsAny(f, "\r\n") ||
		strings.ContainsRune(f, p.cfg.Delimiter) ||
		strings.ContainsRune(f, p.cfg.Quote) {
		return true
	}

	if first {
		for _, prefix := range p.cfg.Comments {
			if strings.HasPrefix(f, prefix) {
				return true
			}
		}
	}

	return false
}

func (p *RecordParser) quote(w stringWriter, f string) {
	cfg := p.cfg

	_, _ = w.WriteRune(cfg.Quote)

	for _, c := range f {
		switch {
		case c == cfg.Quote:
			_, _ = w.WriteRune(cfg.Escape)
		case c == cfg.Escape && !cfg.escapeIsQuote():
			_, _ = w.WriteRune(cfg.Escape)
		}

		_, _ = w.WriteRune(c)
	}

	_, _ = w.WriteRune(cfg.Quote)
}
