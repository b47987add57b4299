package mapping

import (
	"fmt"
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"record-mapper/internal/diagnostic"
	"record-mapper/internal/match"
	"record-mapper/internal/padding"
	"record-mapper/internal/recordio"
	"record-mapper/primitive"
)

const maxSuggestions = 3

// Validate validates a layout file structurally: names, formats, types and
// attribute combinations. Positions and sizes are checked by the layout
// compiler.
func Validate(lf *LayoutFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if lf == nil {
		res.AddError("layout_is_nil", "layout file is nil", "", "")
		return res
	}

	if len(lf.Streams) == 0 {
		res.AddError("no_streams", "layout file declares no streams", "", "")
	}

	seen := mapset.NewThreadUnsafeSet[string]()

	for i := range lf.Streams {
		s := &lf.Streams[i]

		if s.Name != "" && !seen.Add(s.Name) {
			res.AddError("duplicate_stream", fmt.Sprintf("duplicate stream %q", s.Name), "", s.Name)
		}

		res.Merge(*ValidateStream(s))
	}

	return res
}

// ValidateStream validates one stream definition.
func ValidateStream(s *StreamDef) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if s.Name == "" {
		res.AddError("missing_stream_name", "stream must have a name", "", "")
	}

	format, err := recordio.ParseFormat(s.Format)
	if err != nil {
		res.AddError("unknown_format", fmt.Sprintf("stream %q: unknown format %q", s.Name, s.Format), "", s.Name,
			match.Suggest(s.Format, recordio.FormatNames(), maxSuggestions)...)
	}

	if _, err := recordio.LookupEncoding(s.Encoding); err != nil {
		res.AddError("unknown_encoding", fmt.Sprintf("stream %q: %v", s.Name, err), "", s.Name)
	}

	if format.IsValid() {
		validateParser(res, s, format)
	}

	if len(s.Records) == 0 {
		res.AddError("no_records", fmt.Sprintf("stream %q declares no records", s.Name), "", s.Name)
	}

	names := mapset.NewThreadUnsafeSet[string]()

	for i := range s.Records {
		r := &s.Records[i]

		switch {
		case r.Name == "":
			res.AddError("missing_record_name", fmt.Sprintf("stream %q: record %d has no name", s.Name, i+1), "", s.Name)
		case !names.Add(r.Name):
			res.AddError("duplicate_record", fmt.Sprintf("duplicate record %q", r.Name), r.Name, "")
		}

		res.Merge(*ValidateRecord(r))
	}

	return res
}

// ValidateRecord validates the property tree of one record.
func ValidateRecord(r *RecordDef) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if len(r.Fields) == 0 {
		res.AddError("empty_record", "record declares no fields", r.Name, "")
	}

	validateProperties(res, r.Name, nil, r.Fields)

	return res
}

func validateParser(res *diagnostic.Diagnostics, s *StreamDef, format recordio.Format) {
	p := &s.Parser

	var unused []string

	if format != recordio.FormatCSV {
		if p.Quote != 0 {
			unused = append(unused, "quote")
		}

		if p.Multiline || p.WhitespaceAllowed || p.UnquotedQuotesAllowed || p.AlwaysQuote {
			unused = append(unused, "multiline/whitespaceAllowed/unquotedQuotesAllowed/alwaysQuote")
		}
	}

	if format == recordio.FormatCSV && p.LineContinuation != 0 {
		unused = append(unused, "lineContinuation")
	}

	if format == recordio.FormatFixedLength && (p.Delimiter != 0 || p.Escape != 0) {
		unused = append(unused, "delimiter/escape")
	}

	for _, name := range unused {
		res.AddWarning("unused_parser_setting",
			fmt.Sprintf("stream %q: %s does not apply to format %s", s.Name, name, format), "", s.Name)
	}

	for _, c := range p.Comments {
		if c == "" {
			res.AddError("empty_comment_prefix", fmt.Sprintf("stream %q: comment prefix cannot be empty", s.Name), "", s.Name)
		}
	}
}

func validateProperties(res *diagnostic.Diagnostics, record string, parent PropertyPath, props []PropertyDef) {
	names := mapset.NewThreadUnsafeSet[string]()

	for i := range props {
		p := &props[i]
		path := parent.Child(p.Name)

		switch {
		case p.Name == "":
			res.AddError("missing_name", fmt.Sprintf("property %d has no name", i+1), record, parent.String())
			continue
		case !IsValidName(p.Name):
			res.AddError("invalid_name", fmt.Sprintf("invalid property name %q", p.Name), record, path.String())
		case !names.Add(p.Name):
			res.AddError("duplicate_property", fmt.Sprintf("duplicate property %q", p.Name), record, path.String())
		}

		validateOccurs(res, record, path, p)

		switch {
		case p.IsConstant():
			validateConstant(res, record, path, p)
		case p.IsSegment():
			validateSegment(res, record, path, p)
			validateProperties(res, record, path, p.Fields)
		default:
			validateField(res, record, path, p)
		}
	}
}

func validateOccurs(res *diagnostic.Diagnostics, record string, path PropertyPath, p *PropertyDef) {
	if p.MinOccurs != nil && *p.MinOccurs < 0 {
		res.AddError("invalid_min_occurs", fmt.Sprintf("minOccurs %d is negative", *p.MinOccurs), record, path.String())
	}

	if !p.MaxOccurs.IsZero() && !p.MaxOccurs.IsUnbounded() {
		maxOccurs := p.MaxOccurs.Value(0)

		if maxOccurs == 0 {
			res.AddError("invalid_max_occurs", "maxOccurs must be at least 1", record, path.String())
		}

		if p.MinOccurs != nil && *p.MinOccurs > maxOccurs {
			res.AddError("min_exceeds_max",
				fmt.Sprintf("minOccurs %d exceeds maxOccurs %d", *p.MinOccurs, maxOccurs), record, path.String())
		}
	}

	if p.OccursRef != "" {
		if _, err := ParsePath(p.OccursRef); err != nil {
			res.AddError("invalid_occurs_ref", fmt.Sprintf("invalid occursRef: %v", err), record, path.String())
		}
	}
}

func validateConstant(res *diagnostic.Diagnostics, record string, path PropertyPath, p *PropertyDef) {
	var bad []string

	if p.IsSegment() {
		bad = append(bad, "fields")
	}

	if p.Position != nil {
		bad = append(bad, "position")
	}

	if !p.Length.IsZero() {
		bad = append(bad, "length")
	}

	if p.RID {
		bad = append(bad, "rid")
	}

	if len(bad) > 0 {
		res.AddError("invalid_constant",
			fmt.Sprintf("a constant cannot declare %s", strings.Join(bad, ", ")), record, path.String())
	}

	validateType(res, record, path, p)
}

func validateSegment(res *diagnostic.Diagnostics, record string, path PropertyPath, p *PropertyDef) {
	var bad []string

	for _, attr := range []struct {
		name string
		set  bool
	}{
		{"type", p.Type != ""},
		{"format", p.Format != ""},
		{"length", !p.Length.IsZero()},
		{"padding", p.Padding != 0},
		{"justify", p.Justify != ""},
		{"rid", p.RID},
		{"literal", p.Literal != ""},
		{"regex", p.Regex != ""},
		{"default", p.Default != nil},
	} {
		if attr.set {
			bad = append(bad, attr.name)
		}
	}

	if len(bad) > 0 {
		res.AddError("segment_attribute",
			fmt.Sprintf("a segment cannot declare %s", strings.Join(bad, ", ")), record, path.String())
	}
}

func validateField(res *diagnostic.Diagnostics, record string, path PropertyPath, p *PropertyDef) {
	validateType(res, record, path, p)

	if !p.Length.IsZero() && !p.Length.IsUnbounded() && p.Length.Value(0) == 0 {
		res.AddError("invalid_length", "length must be at least 1", record, path.String())
	}

	if _, err := padding.ParseJustify(p.Justify); err != nil {
		res.AddError("invalid_justify", err.Error(), record, path.String(), "left", "right")
	}

	if p.Regex != "" {
		if _, err := regexp.Compile(p.Regex); err != nil {
			res.AddError("invalid_regex", fmt.Sprintf("invalid regex: %v", err), record, path.String())
		}
	}

	if p.RID && p.Literal == "" && p.Regex == "" {
		res.AddError("rid_without_matcher", "a record identifying field needs a literal or a regex", record, path.String())
	}
}

func validateType(res *diagnostic.Diagnostics, record string, path PropertyPath, p *PropertyDef) {
	if _, err := primitive.ParseKind(p.Type); err != nil {
		res.AddError("unknown_type", err.Error(), record, path.String(),
			match.Suggest(p.Type, primitive.Names(), maxSuggestions)...)
	}
}
