package csv

import (
	"fmt"

	"record-mapper/internal/recordio"
)

// Config describes the CSV dialect. Start from DefaultConfig; the zero value
// has no delimiter and is rejected.
type Config struct {
	Delimiter rune
	Quote     rune
	// Escape introduces a literal quote or escape character inside a quoted
	// field. When equal to Quote a doubled quote is a literal quote. Zero
	// disables escaping, in which case a quoted field cannot hold a quote.
	Escape rune
	// Multiline allows quoted fields to span line terminators.
	Multiline bool
	// WhitespaceAllowed tolerates spaces before an opening and after a
	// closing quote.
	WhitespaceAllowed bool
	// UnquotedQuotesAllowed accepts quote characters inside unquoted fields.
	UnquotedQuotesAllowed bool
	// Comments lists line prefixes that mark a line as a comment.
	Comments []string
	// RecordTerminator is written after every record. Empty writes none.
	RecordTerminator string
	// AlwaysQuote quotes every field on write.
	AlwaysQuote bool
}

// DefaultConfig returns the RFC 4180 dialect: comma, double quote, doubled
// quotes as escapes and "\n" between records.
func DefaultConfig() Config {
	return Config{
		Delimiter:        ',',
		Quote:            '"',
		Escape:           '"',
		RecordTerminator: "\n",
	}
}

// Validate checks that the special characters do not collide.
func (c Config) Validate() error {
	if c.Delimiter == 0 {
		return &recordio.ConfigError{Setting: "delimiter", Msg: "delimiter is required"}
	}

	if c.Quote == 0 {
		return &recordio.ConfigError{Setting: "quote", Msg: "quote is required"}
	}

	for _, ch := range []struct {
		name string
		c    rune
	}{{"delimiter", c.Delimiter}, {"quote", c.Quote}, {"escape", c.Escape}} {
		if err := recordio.CheckNotLineEnd(ch.name, ch.c); err != nil {
			return err
		}
	}

	if err := recordio.CheckDistinct("delimiter", c.Delimiter, "quote", c.Quote); err != nil {
		return err
	}

	if err := recordio.CheckDistinct("delimiter", c.Delimiter, "escape", c.Escape); err != nil {
		return err
	}

	if c.WhitespaceAllowed && (c.Delimiter == ' ' || c.Quote == ' ') {
		return &recordio.ConfigError{
			Setting: "whitespaceAllowed",
			Msg:     fmt.Sprintf("whitespace cannot be allowed when the delimiter or quote is %q", ' '),
		}
	}

	for _, p := range c.Comments {
		if p == "" {
			return &recordio.ConfigError{Setting: "comments", Msg: "comment prefix cannot be empty"}
		}
	}

	return nil
}

// escapeIsQuote returns true for the doubled-quote convention.
func (c Config) escapeIsQuote() bool {
	return c.Escape == c.Quote
}
