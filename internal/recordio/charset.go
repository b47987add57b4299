package recordio

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// LookupEncoding resolves an IANA charset name such as "ISO-8859-1" or
// "windows-1252". It returns nil for an empty name and for UTF-8, which need
// no transcoding.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, &ConfigError{Setting: "encoding", Msg: err.Error()}
	}

	if enc == nil {
		return nil, &ConfigError{Setting: "encoding", Msg: fmt.Sprintf("unsupported charset %q", name)}
	}

	if canonical, err := ianaindex.IANA.Name(enc); err == nil && canonical == "UTF-8" {
		return nil, nil
	}

	return enc, nil
}

// DecodeReader returns r decoded from enc to UTF-8. A nil enc returns r.
func DecodeReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil {
		return r
	}

	return transform.NewReader(r, enc.NewDecoder())
}

// EncodeWriter returns a writer that encodes UTF-8 text to enc before
// writing it to w. The returned writer must be closed to flush the last
// partial sequence; closing it does not close w.
func EncodeWriter(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	if enc == nil {
		return nopCloser{w}
	}

	return transform.NewWriter(w, enc.NewEncoder())
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
