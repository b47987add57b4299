package fixedlength

import (
	"errors"
	"io"
	"strings"

	"record-mapper/internal/recordio"
)

// Reader reads fixed-length lines from a character source.
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

// Read returns the next record as a one-element sequence holding its line.
func (r *Reader) Read() ([]string, error) {
	line, err := r.ReadLine()
	if err != nil {
		return nil, err
	}

	return []string{line}, nil
}

// ReadLine returns the next logical line with continuations joined, or
// io.EOF.
func (r *Reader) ReadLine() (string, error) {
	if r.closed {
		return "", io.EOF
	}

	skipped, err := recordio.SkipComments(r.src, r.cfg.Comments, r.eol)
	r.lineNumber += skipped

	if err != nil {
		r.recordLineNumber = -1
		return "", recordio.WrapIO(r.lineNumber+1, "read", err)
	}

	line, err := r.readLine()
	if err != nil {
		if err != io.EOF {
			recordio.CountMalformed(recordio.FormatFixedLength)
		}

		return "", err
	}

	recordio.CountRead(recordio.FormatFixedLength)

	return line, nil
}

func (r *Reader) readLine() (string, error) {
	var text, value strings.Builder

	line := r.lineNumber + 1
	r.recordLineNumber = line

	for {
		c, err := r.src.ReadRune()
		if err == io.EOF {
			if text.Len() == 0 {
				r.recordLineNumber = -1
				r.recordText = ""

				return "", io.EOF
			}

			r.recordText = text.String()

			return value.String(), nil
		}

		if err != nil {
			r.recordText = text.String()
			return "", recordio.WrapIO(line, "read", err)
		}

		if c == r.cfg.LineContinuation && c != 0 {
			term, err := recordio.MatchContinuation(r.src, r.eol)
			if term != "" {
				r.lineNumber++
				text.WriteRune(c)
				text.WriteString(term)
			}

			if err != nil {
				if term == "" {
					text.WriteRune(c)
				}

				r.recordText = text.String()

				if errors.Is(err, recordio.ErrDanglingContinuation) {
					return "", recordio.Malformed(line, "%s", err.Error())
				}

				return "", recordio.WrapIO(line, "read", err)
			}

			if term != "" {
				continue
			}
		}

		term, err := r.eol.Match(r.src, c)
		if err != nil {
			r.recordText = text.String()
			return "", recordio.WrapIO(line, "read", err)
		}

		if term != "" {
			r.lineNumber++
			r.recordText = text.String()

			return value.String(), nil
		}

		text.WriteRune(c)
		value.WriteRune(c)
	}
}
