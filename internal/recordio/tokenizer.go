package recordio

import "io"

// RecordReader reads one record at a time from a character source and splits
// it into an ordered field-text sequence.
//
// Implementations are stateful and not safe for concurrent use.
type RecordReader interface {
	// Read returns the next record, or io.EOF when the input is exhausted.
	// Malformed input is reported as a *RecordIOError; the reader
	// resynchronizes so the following call may succeed.
	Read() ([]string, error)
	// RecordLineNumber returns the starting line of the last record read,
	// or -1 before the first read and after the end of the stream.
	RecordLineNumber() int
	// RecordText returns the verbatim text of the last record read.
	RecordText() string
	Close() error
}

// RecordWriter formats field-text sequences into records on a character sink.
//
// Implementations are stateful and not safe for concurrent use.
type RecordWriter interface {
	Write(fields []string) error
	Flush() error
	Close() error
}

// RecordMarshaller formats a single record without a record terminator.
type RecordMarshaller interface {
	Marshal(fields []string) (string, error)
}

// RecordUnmarshaller parses a single record held in a string.
type RecordUnmarshaller interface {
	Unmarshal(text string) ([]string, error)
}

// CloseReader closes r if it is an io.Closer.
func CloseReader(r io.Reader) error {
	if c, ok := r.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// CloseWriter closes w if it is an io.Closer.
func CloseWriter(w io.Writer) error {
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
