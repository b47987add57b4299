package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidLayout(t *testing.T) {
	lf, err := Parse([]byte(ordersYAML))
	require.NoError(t, err)

	res := Validate(lf)
	assert.True(t, res.IsValid(), res.Err())
	assert.Empty(t, res.Warnings)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		codes []string
	}{
		{
			name: "unknown format with suggestion",
			yaml: `
streams:
  - name: s
    format: cvs
    records:
      - name: r
        fields: [{name: a}]
`,
			codes: []string{"unknown_format"},
		},
		{
			name: "unknown encoding",
			yaml: `
streams:
  - name: s
    format: csv
    encoding: klingon-8
    records:
      - name: r
        fields: [{name: a}]
`,
			codes: []string{"unknown_encoding"},
		},
		{
			name: "duplicate stream, record and property names",
			yaml: `
streams:
  - name: s
    format: csv
    records:
      - name: r
        fields: [{name: a}, {name: a}]
      - name: r
        fields: [{name: b}]
  - name: s
    format: csv
    records:
      - name: q
        fields: [{name: a}]
`,
			codes: []string{"duplicate_property", "duplicate_record", "duplicate_stream"},
		},
		{
			name: "empty stream and record",
			yaml: `
streams:
  - name: s
    format: delimited
  - name: t
    format: delimited
    records:
      - name: r
`,
			codes: []string{"no_records", "empty_record"},
		},
		{
			name: "field attribute problems",
			yaml: `
streams:
  - name: s
    format: fixedlength
    records:
      - name: r
        fields:
          - name: a
            type: integr
            length: 0
          - name: b
            justify: middle
            length: 2
          - name: c
            rid: true
            length: 1
          - name: d
            regex: "[a-"
            length: 1
          - name: 9lives
            length: 1
`,
			codes: []string{"unknown_type", "invalid_length", "invalid_justify", "rid_without_matcher", "invalid_regex", "invalid_name"},
		},
		{
			name: "occurrence problems",
			yaml: `
streams:
  - name: s
    format: csv
    records:
      - name: r
        fields:
          - name: a
            minOccurs: 3
            maxOccurs: 2
          - name: b
            minOccurs: -1
          - name: c
            maxOccurs: 0
          - name: d
            occursRef: "x..y"
`,
			codes: []string{"min_exceeds_max", "invalid_min_occurs", "invalid_max_occurs", "invalid_occurs_ref"},
		},
		{
			name: "segment and constant attributes",
			yaml: `
streams:
  - name: s
    format: csv
    records:
      - name: r
        fields:
          - name: seg
            type: int
            rid: true
            fields: [{name: a}]
          - name: k
            constant: "x"
            position: 3
`,
			codes: []string{"segment_attribute", "invalid_constant"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			res := Validate(lf)
			assert.Equal(t, tt.codes, res.Codes())
			assert.Error(t, res.Err())
		})
	}
}

func TestValidate_Suggestions(t *testing.T) {
	lf, err := Parse([]byte(`
streams:
  - name: s
    format: csv
    records:
      - name: r
        fields:
          - name: a
            type: integr
`))
	require.NoError(t, err)

	res := Validate(lf)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Suggestions, "int")
	assert.Equal(t, "r", res.Errors[0].Record)
	assert.Equal(t, "a", res.Errors[0].Path)
}

func TestValidate_UnusedParserSettings(t *testing.T) {
	lf, err := Parse([]byte(`
streams:
  - name: s
    format: fixedlength
    parser:
      quote: "'"
      delimiter: ","
    records:
      - name: r
        fields: [{name: a, length: 1}]
`))
	require.NoError(t, err)

	res := Validate(lf)
	assert.True(t, res.IsValid())
	assert.Len(t, res.Warnings, 2)
}

func TestValidate_Nil(t *testing.T) {
	res := Validate(nil)
	assert.Equal(t, []string{"layout_is_nil"}, res.Codes())
}
