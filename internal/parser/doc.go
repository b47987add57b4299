// Package parser turns resolved record layouts into record parsers.
//
// A RecordParser reads field values out of the field-text sequence produced
// by a tokenizer, and formats values back into one. Fixed-length records are
// a single token holding the whole line; a field's position and size count
// characters of that line. For csv and delimited records each field is one
// token and positions are token indexes.
//
// Values are plain maps: a field maps to its converted value, or to a []any
// when it may repeat, and a segment maps to a nested Values, or to a []Values.
//
// Compiled parsers are immutable and may be shared between goroutines.
package parser
