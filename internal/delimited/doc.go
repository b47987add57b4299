// Package delimited reads and writes records whose fields are separated by a
// single delimiter character, with optional escaping and line continuation.
//
// There is no quoting: an escape character followed by the delimiter or by
// itself yields that character literally, and a line continuation character
// immediately before a record terminator joins the next physical line onto
// the current record.
//
// Readers and writers are not safe for concurrent use.
package delimited
