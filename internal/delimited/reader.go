package delimited

import (
	"errors"
	"io"
	"strings"

	"record-mapper/internal/recordio"
)

// Reader reads delimited records from a character source.
type Reader struct {
	cfg    Config
	src    *recordio.Source
	in     io.Reader
	eol    recordio.LineEnd
	closed bool

	lineNumber       int
	recordLineNumber int
	recordText       string
}

var _ recordio.RecordReader = (*Reader)(nil)

// NewReader creates a Reader over r.
func NewReader(r io.Reader, cfg Config) (*Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Reader{
		cfg:              cfg,
		src:              recordio.NewSource(r),
		in:               r,
		eol:              recordio.NewLineEnd(cfg.RecordTerminator),
		recordLineNumber: -1,
	}, nil
}

// RecordLineNumber returns the line on which the last record started, or -1.
func (r *Reader) RecordLineNumber() int {
	return r.recordLineNumber
}

// RecordText returns the raw text of the last record, continuations included.
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
			recordio.CountMalformed(recordio.FormatDelimited)
		}

		return nil, err
	}

	recordio.CountRead(recordio.FormatDelimited)

	return fields, nil
}

func (r *Reader) readRecord() ([]string, error) {
	var (
		text   strings.Builder
		field  strings.Builder
		fields []string
	)

	line := r.lineNumber + 1
	r.recordLineNumber = line

	finish := func() ([]string, error) {
		r.recordText = text.String()
		return append(fields, field.String()), nil
	}

	for {
		c, err := r.src.ReadRune()
		if err == io.EOF {
			if text.Len() == 0 {
				r.recordLineNumber = -1
				r.recordText = ""

				return nil, io.EOF
			}

			return finish()
		}

		if err != nil {
			r.recordText = text.String()
			return nil, recordio.WrapIO(line, "read", err)
		}

		if c == r.cfg.LineContinuation && c != 0 {
			term, err := recordio.MatchContinuation(r.src, r.eol)
			if term != "" {
				r.lineNumber++
			}

			if err != nil {
				text.WriteRune(c)
				text.WriteString(term)
				r.recordText = text.String()

				if errors.Is(err, recordio.ErrDanglingContinuation) {
					return nil, recordio.Malformed(line, "%s", err.Error())
				}

				return nil, recordio.WrapIO(line, "read", err)
			}

			if term != "" {
				text.WriteRune(c)
				text.WriteString(term)

				continue
			}
		}

		if c == r.cfg.Escape && c != 0 {
			text.WriteRune(c)

			next, err := r.src.Peek()
			if err != nil && err != io.EOF {
				r.recordText = text.String()
				return nil, recordio.WrapIO(line, "read", err)
			}

			if err == nil && (next == r.cfg.Delimiter || next == r.cfg.Escape) {
				_, _ = r.src.ReadRune()
				text.WriteRune(next)
				field.WriteRune(next)

				continue
			}

			field.WriteRune(c)

			continue
		}

		if c == r.cfg.Delimiter {
			text.WriteRune(c)
			fields = append(fields, field.String())
			field.Reset()

			continue
		}

		term, err := r.eol.Match(r.src, c)
		if err != nil {
			r.recordText = text.String()
			return nil, recordio.WrapIO(line, "read", err)
		}

		if term != "" {
			r.lineNumber++
			return finish()
		}

		text.WriteRune(c)
		field.WriteRune(c)
	}
}
