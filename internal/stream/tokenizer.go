package stream

import (
	"fmt"
	"io"

	"record-mapper/internal/common"
	"record-mapper/internal/csv"
	"record-mapper/internal/delimited"
	"record-mapper/internal/fixedlength"
	"record-mapper/internal/mapping"
	"record-mapper/internal/recordio"
)

func csvConfig(p *mapping.ParserDef) csv.Config {
	cfg := csv.DefaultConfig()
	cfg.Delimiter = p.Delimiter.Or(cfg.Delimiter)
	cfg.Quote = p.Quote.Or(cfg.Quote)
	cfg.Escape = p.Escape.Or(cfg.Quote)
	cfg.Multiline = p.Multiline
	cfg.WhitespaceAllowed = p.WhitespaceAllowed
	cfg.UnquotedQuotesAllowed = p.UnquotedQuotesAllowed
	cfg.AlwaysQuote = p.AlwaysQuote
	cfg.Comments = p.Comments
	cfg.RecordTerminator = common.Deref(p.RecordTerminator, cfg.RecordTerminator)

	return cfg
}

func delimitedConfig(p *mapping.ParserDef) delimited.Config {
	cfg := delimited.DefaultConfig()
	cfg.Delimiter = p.Delimiter.Or(cfg.Delimiter)
	cfg.Escape = p.Escape.Or(0)
	cfg.LineContinuation = p.LineContinuation.Or(0)
	cfg.RecordTerminator = common.Deref(p.RecordTerminator, "")
	cfg.Comments = p.Comments

	return cfg
}

func fixedLengthConfig(p *mapping.ParserDef) fixedlength.Config {
	return fixedlength.Config{
		LineContinuation: p.LineContinuation.Or(0),
		RecordTerminator: common.Deref(p.RecordTerminator, ""),
		Comments:         p.Comments,
	}
}

// newTokenReader selects the tokenizer for format.
func newTokenReader(format recordio.Format, p *mapping.ParserDef, r io.Reader) (recordio.RecordReader, error) {
	var (
		tr  recordio.RecordReader
		err error
	)

	switch format {
	case recordio.FormatCSV:
		tr, err = csv.NewReader(r, csvConfig(p))
	case recordio.FormatDelimited:
		tr, err = delimited.NewReader(r, delimitedConfig(p))
	case recordio.FormatFixedLength:
		tr, err = fixedlength.NewReader(r, fixedLengthConfig(p))
	default:
		err = fmt.Errorf("unsupported record format %s", format)
	}

	if err != nil {
		return nil, err
	}

	return tr, nil
}

func newTokenWriter(format recordio.Format, p *mapping.ParserDef, w io.Writer) (recordio.RecordWriter, error) {
	var (
		tw  recordio.RecordWriter
		err error
	)

	switch format {
	case recordio.FormatCSV:
		tw, err = csv.NewWriter(w, csvConfig(p))
	case recordio.FormatDelimited:
		tw, err = delimited.NewWriter(w, delimitedConfig(p))
	case recordio.FormatFixedLength:
		tw, err = fixedlength.NewWriter(w, fixedLengthConfig(p))
	default:
		err = fmt.Errorf("unsupported record format %s", format)
	}

	if err != nil {
		return nil, err
	}

	return tw, nil
}
