// Package stream reads and writes typed records on flat files.
//
// A Reader composes the tokenizer selected by the stream's format with the
// compiled record parsers: each field-text sequence is identified as one of
// the stream's records and converted to Values. A Writer does the reverse.
//
// Readers and Writers are not safe for concurrent use.
package stream
