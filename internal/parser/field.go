package parser

import (
	"regexp"
	"strings"

	"record-mapper/internal/layout"
	"record-mapper/internal/padding"
	"record-mapper/internal/recordio"
	"record-mapper/primitive"
)

// field converts the text of one field or constant.
type field struct {
	record  string
	node    *layout.Node
	handler TypeHandler
	// padder is nil when the field text is not padded.
	padder   *padding.Padder
	trim     bool
	required bool
	literal  string
	regex    *regexp.Regexp
	def      *string
	constant any
}

func newField(rec *layout.Record, n *layout.Node) (*field, error) {
	d := n.Decl

	h, err := NewHandler(n.Type, d.Format)
	if err != nil {
		return nil, &FieldError{Record: rec.Name, Field: n.Path.String(), Err: err}
	}

	f := &field{
		record:   rec.Name,
		node:     n,
		handler:  h,
		trim:     d.Trim,
		required: d.Required,
		literal:  d.Literal,
		def:      d.Default,
	}

	if d.Regex != "" {
		if f.regex, err = regexp.Compile("^(?:" + d.Regex + ")$"); err != nil {
			return nil, f.fail("", err)
		}
	}

	if d.Constant != nil {
		if f.constant, err = h.Parse(*d.Constant); err != nil {
			return nil, f.fail(*d.Constant, err)
		}

		return f, nil
	}

	if n.MaxSize != layout.Unbounded && (rec.Format == recordio.FormatFixedLength || !d.Length.IsZero()) {
		justify, _ := padding.ParseJustify(d.Justify)

		length := n.MaxSize
		if rec.Format.FieldsAreTokens() {
			length = d.Length.Value(0)
		}

		f.padder = &padding.Padder{
			Length:   length,
			Char:     d.Padding.Or(' '),
			Justify:  justify,
			Truncate: d.Truncate,
		}
	}

	return f, nil
}

func (f *field) fail(text string, err error) error {
	return &FieldError{Record: f.record, Field: f.node.Path.String(), Text: text, Err: err}
}

// text unpads raw field text.
func (f *field) text(raw string) string {
	if f.padder != nil {
		raw = f.padder.Unpad(raw)
	}

	if f.trim {
		raw = strings.TrimSpace(raw)
	}

	return raw
}

// parse converts raw field text. Empty text is the default value when one is
// declared, nil for non-string types and "" for strings.
func (f *field) parse(raw string) (any, error) {
	text := f.text(raw)

	if text == "" {
		switch {
		case f.required:
			return nil, f.fail("", ErrRequired)
		case f.def != nil:
			text = *f.def
		case f.node.Type != primitive.KindString:
			return nil, nil
		}
	}

	v, err := f.handler.Parse(text)
	if err != nil {
		return nil, f.fail(text, err)
	}

	return v, nil
}

// matches reports whether raw identifies the record.
func (f *field) matches(raw string) bool {
	text := f.text(raw)

	if f.literal != "" && text != f.literal {
		return false
	}

	return f.regex == nil || f.regex.MatchString(text)
}

// format converts v to padded field text. A nil value falls back to the
// default, then to the literal.
func (f *field) format(v any) (string, error) {
	var text string

	switch {
	case v != nil:
		s, err := f.handler.Format(v)
		if err != nil {
			return "", f.fail("", err)
		}

		text = s
	case f.def != nil:
		text = *f.def
	default:
		text = f.literal
	}

	if text == "" && f.required {
		return "", f.fail("", ErrRequired)
	}

	if f.padder == nil {
		return text, nil
	}

	padded, err := f.padder.Pad(text)
	if err != nil {
		return "", f.fail(text, err)
	}

	return padded, nil
}
