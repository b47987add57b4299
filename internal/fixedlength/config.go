package fixedlength

import "record-mapper/internal/recordio"

// Config describes how lines are delimited.
type Config struct {
	// LineContinuation is optional; zero disables continuation.
	LineContinuation rune
	// RecordTerminator, when set, is the only terminator recognised on read
	// and is written after every record. Empty reads CR, LF or CRLF and
	// writes "\n".
	RecordTerminator string
	Comments         []string
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := recordio.CheckNotLineEnd("lineContinuation", c.LineContinuation); err != nil {
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
