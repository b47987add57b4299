// Package csv implements the CSV record tokenizer.
//
// The Reader is a character-at-a-time state machine with four states:
// before a field, inside a quoted field, inside an unquoted field and just
// after a closing quote. It supports a configurable delimiter, quote and
// escape character, quoted fields spanning several lines, whitespace around
// quoted fields, comment lines and precise line tracking. Malformed records
// are reported as *recordio.RecordIOError; the reader skips to the end of the
// offending physical line so the next Read can continue.
//
// The Writer quotes a field when it contains the delimiter, the quote, a
// carriage return or a line feed (or always, when configured), doubling or
// escaping embedded quote characters.
//
// Readers and Writers are not safe for concurrent use.
package csv
