package csv

import (
	"io"
	"strings"

	"record-mapper/internal/recordio"
)

type state int

const (
	stateInitial state = iota
	stateQuoted
	stateUnquoted
	stateAfterQuote
)

// Reader reads CSV records from a character source.
type Reader struct {
	cfg    Config
	src    *recordio.Source
	in     io.Reader
	eol    recordio.LineEnd
	closed bool

	// lineNumber counts the physical lines consumed so far.
	lineNumber       int
	recordLineNumber int
	recordText       string
}

var _ recordio.RecordReader = (*Reader)(nil)

// NewReader creates a Reader over r. The configuration is validated up front;
// an invalid configuration returns a *recordio.ConfigError.
func NewReader(r io.Reader, cfg Config) (*Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Reader{
		cfg:              cfg,
		src:              recordio.NewSource(r),
		in:               r,
		recordLineNumber: -1,
	}, nil
}

// RecordLineNumber returns the line on which the last record started, or -1.
func (r *Reader) RecordLineNumber() int {
	return r.recordLineNumber
}

// RecordText returns the text of the last record without its terminator.
func (r *Reader) RecordText() string {
	return r.recordText
}

// Close closes the underlying reader if it is an io.Closer.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true

	return recordio.CloseReader(r.in)
}

// Read returns the fields of the next record, or io.EOF.
func (r *Reader) Read() ([]string, error) {
	if r.closed {
		return nil, io.EOF
	}

	skipped, err := recordio.SkipComments(r.src, r.cfg.Comments, r.eol)
	r.lineNumber += skipped

	if err != nil {
		r.recordLineNumber = -1
		return nil, recordio.WrapIO(r.lineNumber+1, "read", err)
	}

	fields, err := r.readRecord()
	if err != nil {
		if err != io.EOF {
			recordio.CountMalformed(recordio.FormatCSV)
		}

		return nil, err
	}

	recordio.CountRead(recordio.FormatCSV)

	return fields, nil
}

// record holds the in-progress state of one Read.
type record struct {
	text   strings.Builder
	field  strings.Builder
	space  strings.Builder
	fields []string
	state  state
}

func (rec *record) emit() {
	rec.fields = append(rec.fields, rec.field.String())
	rec.field.Reset()
}

func (rec *record) empty() bool {
	return rec.text.Len() == 0 && len(rec.fields) == 0
}

func (r *Reader) readRecord() ([]string, error) {
	rec := &record{}
	line := r.lineNumber + 1
	r.recordLineNumber = line

	for {
		c, err := r.src.ReadRune()
		if err == io.EOF {
			return r.endOfInput(rec, line)
		}

		if err != nil {
			r.recordText = rec.text.String()
			return nil, recordio.WrapIO(line, "read", err)
		}

		term, err := r.eol.Match(r.src, c)
		if err != nil {
			r.recordText = rec.text.String()
			return nil, recordio.WrapIO(line, "read", err)
		}

		if term != "" {
			r.lineNumber++

			done, err := r.lineEnd(rec, line, term)
			if err != nil {
				r.recordText = rec.text.String()
				return nil, err
			}

			if done {
				r.recordText = rec.text.String()
				return rec.fields, nil
			}

			continue
		}

		rec.text.WriteRune(c)

		if err := r.step(rec, line, c); err != nil {
			r.skipLine(rec)
			r.recordText = rec.text.String()

			return nil, err
		}
	}
}

// step feeds one character that is not part of a line terminator.
func (r *Reader) step(rec *record, line int, c rune) error {
	cfg := r.cfg

	switch rec.state {
	case stateInitial:
		switch {
		case c == cfg.Delimiter:
			rec.field.WriteString(rec.space.String())
			rec.space.Reset()
			rec.emit()
		case c == cfg.Quote:
			rec.space.Reset()
			rec.state = stateQuoted
		case c == ' ' && cfg.WhitespaceAllowed:
			rec.space.WriteRune(c)
		default:
			rec.field.WriteString(rec.space.String())
			rec.space.Reset()
			rec.field.WriteRune(c)
			rec.state = stateUnquoted
		}

	case stateQuoted:
		return r.stepQuoted(rec, c)

	case stateUnquoted:
		switch {
		case c == cfg.Delimiter:
			rec.emit()
			rec.state = stateInitial
		case c == cfg.Quote && !cfg.UnquotedQuotesAllowed:
			return recordio.Malformed(line, "quote character %q found in unquoted field", c)
		default:
			rec.field.WriteRune(c)
		}

	case stateAfterQuote:
		switch {
		case c == cfg.Delimiter:
			rec.emit()
			rec.state = stateInitial
		case c == ' ' && cfg.WhitespaceAllowed:
		default:
			return recordio.Malformed(line, "invalid character %q found outside of quoted field", c)
		}
	}

	return nil
}

func (r *Reader) stepQuoted(rec *record, c rune) error {
	cfg := r.cfg

	switch {
	case c == cfg.Quote && cfg.escapeIsQuote():
		next, err := r.src.Peek()
		if err != nil && err != io.EOF {
			return recordio.WrapIO(r.recordLineNumber, "read", err)
		}

		if err == nil && next == cfg.Quote {
			_, _ = r.src.ReadRune()
			rec.text.WriteRune(next)
			rec.field.WriteRune(next)

			return nil
		}

		rec.state = stateAfterQuote

	case c == cfg.Quote:
		rec.state = stateAfterQuote

	case c == cfg.Escape && cfg.Escape != 0:
		next, err := r.src.Peek()
		if err != nil && err != io.EOF {
			return recordio.WrapIO(r.recordLineNumber, "read", err)
		}

		if err == nil && (next == cfg.Quote || next == cfg.Escape) {
			_, _ = r.src.ReadRune()
			rec.text.WriteRune(next)
			rec.field.WriteRune(next)

			return nil
		}

		rec.field.WriteRune(c)

	default:
		rec.field.WriteRune(c)
	}

	return nil
}

// lineEnd handles a record terminator and reports whether the record is
// complete.
func (r *Reader) lineEnd(rec *record, line int, term string) (bool, error) {
	switch rec.state {
	case stateQuoted:
		if !r.cfg.Multiline {
			return true, recordio.Malformed(line, "expected end quote before end of line")
		}

		rec.text.WriteString(term)
		rec.field.WriteString(term)

		return false, nil

	case stateInitial:
		rec.field.WriteString(rec.space.String())
		rec.space.Reset()
	}

	rec.emit()

	return true, nil
}

// endOfInput finalizes a record cut short by the end of the input.
func (r *Reader) endOfInput(rec *record, line int) ([]string, error) {
	r.recordText = rec.text.String()

	if rec.state == stateQuoted {
		return nil, recordio.Malformed(line, "expected end quote before end of record")
	}

	if rec.empty() && rec.space.Len() == 0 {
		r.recordLineNumber = -1
		r.recordText = ""

		return nil, io.EOF
	}

	if rec.state == stateInitial {
		rec.field.WriteString(rec.space.String())
		rec.space.Reset()
	}

	rec.emit()

	return rec.fields, nil
}

// skipLine consumes the rest of the current physical line after an error so
// the next Read starts on a fresh line.
func (r *Reader) skipLine(rec *record) {
	for {
		c, err := r.src.ReadRune()
		if err != nil {
			return
		}

		term, err := r.eol.Match(r.src, c)
		if err != nil {
			return
		}

		if term != "" {
			r.lineNumber++
			return
		}

		rec.text.WriteRune(c)
	}
}
