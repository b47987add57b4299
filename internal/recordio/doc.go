// Package recordio holds the pieces shared by the record tokenizers.
//
// It defines the tokenizer contracts (RecordReader, RecordWriter,
// RecordMarshaller, RecordUnmarshaller), the character Source with
// mark/reset lookahead used for comment detection, record terminator
// matching, comment skipping, charset lookup and the error types
// raised for malformed input and invalid configuration.
//
// Nothing in this package is safe for concurrent use. A Source or a
// tokenizer built on it assumes strictly sequential calls; callers that
// share one across goroutines must serialize access themselves.
package recordio
