// Package fixedlength extracts and writes the lines of fixed-length files.
//
// The tokenizer does not split fields: a record is one logical line, and the
// fields are sliced out of it later by position. Line continuation and
// comment lines are handled here.
package fixedlength
