package delimited

import "record-mapper/internal/recordio"

// Config describes the delimited dialect.
type Config struct {
	Delimiter rune
	// Escape is optional; zero disables escaping.
	Escape rune
	// LineContinuation is optional; zero disables continuation.
	LineContinuation rune
	// RecordTerminator, when set, is the only terminator recognised on read
	// and is written after every record. Empty reads CR, LF or CRLF and
	// writes "\n".
	RecordTerminator string
	Comments         []string
}

// DefaultConfig returns a tab delimited dialect with no escape.
func DefaultConfig() Config {
	return Config{Delimiter: '\t'}
}

// Validate checks that the special characters do not collide.
func (c Config) Validate() error {
	if c.Delimiter == 0 {
		return &recordio.ConfigError{Setting: "delimiter", Msg: "delimiter is required"}
	}

	for _, ch := range []struct {
		name string
		c    rune
	}{{"delimiter", c.Delimiter}, {"escape", c.Escape}, {"lineContinuation", c.LineContinuation}} {
		if err := recordio.CheckNotLineEnd(ch.name, ch.c); err != nil {
			return err
		}
	}

	if err := recordio.CheckDistinct("delimiter", c.Delimiter, "escape", c.Escape); err != nil {
		return err
	}

	if err := recordio.CheckDistinct("delimiter", c.Delimiter, "lineContinuation", c.LineContinuation); err != nil {
		return err
	}

	for _, p := range c.Comments {
		if p == "" {
			return &recordio.ConfigError{Setting: "comments", Msg: "comment prefix cannot be empty"}
		}
	}

	return nil
}

func (c Config) terminator() string {
	if c.RecordTerminator == "" {
		return "\n"
	}

	return c.RecordTerminator
}
