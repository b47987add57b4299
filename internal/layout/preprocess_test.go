package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-mapper/internal/diagnostic"
	"record-mapper/internal/mapping"
	"record-mapper/internal/recordio"
)

// recordDef parses a single-record layout whose fields are given as YAML
// indented for a record's "fields" key.
func recordDef(t *testing.T, fields string) *mapping.RecordDef {
	t.Helper()

	lf, err := mapping.Parse([]byte(fmt.Sprintf(`
streams:
  - name: test
    format: csv
    records:
      - name: rec
        fields:
%s`, fields)))
	require.NoError(t, err)

	return &lf.Streams[0].Records[0]
}

func preprocess(t *testing.T, format recordio.Format, fields string) (*Record, error) {
	t.Helper()

	return Preprocess(format, recordDef(t, fields))
}

func mustPreprocess(t *testing.T, format recordio.Format, fields string) *Record {
	t.Helper()

	rec, err := preprocess(t, format, fields)
	require.NoError(t, err)

	return rec
}

func errorCodes(t *testing.T, err error) []string {
	t.Helper()

	require.Error(t, err)

	var ce *diagnostic.CompileError
	require.ErrorAs(t, err, &ce)

	return ce.Diagnostics.Codes()
}

func lookup(t *testing.T, rec *Record, path string) *Node {
	t.Helper()

	n, ok := rec.Lookup(path)
	require.True(t, ok, "node %s", path)

	return n
}

func positions(t *testing.T, rec *Record, paths ...string) []int {
	t.Helper()

	out := make([]int, 0, len(paths))
	for _, p := range paths {
		out = append(out, lookup(t, rec, p).Position)
	}

	return out
}

func TestPreprocess_FixedLengthTrailingFields(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatFixedLength, `
          - name: memo
            length: unbounded
          - name: amount
            length: 4
          - name: code
            length: 4
`)

	assert.Equal(t, []int{0, -8, -4}, positions(t, rec, "memo", "amount", "code"))

	memo := lookup(t, rec, "memo")
	assert.Equal(t, memo.ID, rec.Indeterminate)
	assert.True(t, memo.HasUntil)
	assert.Equal(t, -8, memo.Until)
	assert.Equal(t, 0, memo.MinSize)
	assert.Equal(t, Unbounded, memo.MaxSize)

	assert.False(t, memo.Trailing)
	assert.True(t, lookup(t, rec, "amount").Trailing)
	assert.True(t, lookup(t, rec, "code").Trailing)

	assert.Equal(t, 8, rec.MinSize)
	assert.Equal(t, Unbounded, rec.MaxSize)
	assert.False(t, rec.Explicit)
}

func TestPreprocess_DelimitedTrailingFields(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatDelimited, `
          - name: id
          - name: notes
            maxOccurs: unbounded
          - name: x
          - name: "y"
          - name: z
`)

	assert.Equal(t, []int{0, 1, -3, -2, -1}, positions(t, rec, "id", "notes", "x", "y", "z"))

	notes := lookup(t, rec, "notes")
	assert.Equal(t, notes.ID, rec.Indeterminate)
	assert.Equal(t, -3, notes.Until)
	assert.Equal(t, 1, notes.MinOccurs)
	assert.Equal(t, Unbounded, notes.MaxOccurs)
	assert.Equal(t, 1, notes.MaxSize, "a token field is one unit")
}

func TestPreprocess_FixedPositions(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatFixedLength, `
          - name: type
            length: 1
            rid: true
            literal: A
          - name: id
            length: 6
          - name: name
            length: 20
`)

	assert.Equal(t, []int{0, 1, 7}, positions(t, rec, "type", "id", "name"))
	assert.Equal(t, NoNode, rec.Indeterminate)
	assert.Equal(t, 27, rec.MinSize)
	assert.Equal(t, 27, rec.MaxSize)

	for _, n := range rec.Nodes {
		assert.False(t, n.Trailing, n.Name)
		assert.False(t, n.HasUntil, n.Name)
	}
}

func TestPreprocess_NestedSegments(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatDelimited, `
          - name: a
          - name: seg
            fields:
              - name: b
              - name: inner
                fields:
                  - name: c
                  - name: d
          - name: e
`)

	assert.Equal(t, []int{0, 1, 1, 2, 2, 3, 4},
		positions(t, rec, "a", "seg", "seg.b", "seg.inner", "seg.inner.c", "seg.inner.d", "e"))

	seg := lookup(t, rec, "seg")
	assert.Equal(t, KindSegment, seg.Kind)
	assert.Equal(t, 3, seg.MinSize)
	assert.Equal(t, 3, seg.MaxSize)
	assert.Len(t, seg.Children, 2)

	inner := lookup(t, rec, "seg.inner")
	assert.Equal(t, seg.ID, inner.Parent)
	assert.Equal(t, mapping.PropertyPath{"seg", "inner"}, inner.Path)
}

func TestPreprocess_RepeatingSegment(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatDelimited, `
          - name: id
          - name: items
            minOccurs: 2
            maxOccurs: 2
            fields:
              - name: sku
              - name: qty
                type: int
          - name: total
`)

	assert.Equal(t, []int{0, 1, 1, 2, 5}, positions(t, rec, "id", "items", "items.sku", "items.qty", "total"))

	items := lookup(t, rec, "items")
	assert.True(t, items.Repeats())
	assert.False(t, items.Variable)
	assert.Equal(t, 4, items.Span())
	assert.Equal(t, 6, rec.MaxSize)
}

func TestPreprocess_OccursRef(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatDelimited, `
          - name: count
            type: int
          - name: items
            occursRef: count
            fields:
              - name: sku
              - name: qty
          - name: checksum
`)

	count := lookup(t, rec, "count")
	items := lookup(t, rec, "items")

	assert.Equal(t, count.ID, items.OccursRef)
	assert.Equal(t, 0, items.MinOccurs)
	assert.Equal(t, Unbounded, items.MaxOccurs)
	assert.True(t, items.Variable)
	assert.Equal(t, items.ID, rec.Indeterminate)

	assert.Equal(t, []int{1, 1, 2, -1}, positions(t, rec, "items", "items.sku", "items.qty", "checksum"))
	assert.Equal(t, -1, items.Until)
}

func TestPreprocess_OccursRefRelativeToSegment(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatDelimited, `
          - name: group
            fields:
              - name: "n"
                type: int
              - name: values
                occursRef: "n"
`)

	assert.Equal(t, lookup(t, rec, "group.n").ID, lookup(t, rec, "group.values").OccursRef)
}

func TestPreprocess_Constant(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatFixedLength, `
          - name: kind
            constant: order
          - name: id
            length: 3
`)

	kind := lookup(t, rec, "kind")
	assert.Equal(t, KindConstant, kind.Kind)
	assert.True(t, kind.Constant)
	assert.Equal(t, 0, kind.Span())

	assert.Equal(t, 0, lookup(t, rec, "id").Position)
	assert.Equal(t, 3, rec.MaxSize)
}

func TestPreprocess_UntilWithoutFollowers(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatFixedLength, `
          - name: id
            length: 2
          - name: rest
            length: unbounded
            until: -3
`)

	rest := lookup(t, rec, "rest")
	assert.Equal(t, 2, rest.Position)
	assert.Equal(t, -3, rest.Until)
}

func TestPreprocess_UntilMatchingFollowers(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatFixedLength, `
          - name: rest
            length: unbounded
            until: -2
          - name: crc
            length: 2
`)

	assert.Equal(t, -2, lookup(t, rec, "rest").Until)
	assert.Equal(t, -2, lookup(t, rec, "crc").Position)
}

func TestPreprocess_Explicit(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatFixedLength, `
          - name: id
            position: 0
            length: 4
          - name: name
            position: 4
            length: 10
          - name: address
            position: 14
            fields:
              - name: street
                position: 0
                length: 20
              - name: zip
                position: 20
                length: 5
`)

	assert.True(t, rec.Explicit)
	assert.Equal(t, []int{0, 4, 14, 14, 34}, positions(t, rec, "id", "name", "address", "address.street", "address.zip"))

	address := lookup(t, rec, "address")
	assert.Equal(t, 25, address.MaxSize)
	assert.Equal(t, 39, rec.MaxSize)
	assert.Equal(t, 39, rec.MinSize)
}

func TestPreprocess_ExplicitTrailing(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatFixedLength, `
          - name: id
            position: 0
            length: 4
          - name: body
            position: 4
            length: unbounded
            until: -2
          - name: crc
            position: -2
            length: 2
`)

	body := lookup(t, rec, "body")
	assert.Equal(t, body.ID, rec.Indeterminate)
	assert.Equal(t, -2, body.Until)

	crc := lookup(t, rec, "crc")
	assert.Equal(t, -2, crc.Position)
	assert.True(t, crc.Trailing)
	assert.Equal(t, Unbounded, rec.MaxSize)
}

func TestPreprocess_ExplicitSegmentWithoutPosition(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatDelimited, `
          - name: head
            position: 0
          - name: pair
            fields:
              - name: right
                position: 3
              - name: left
                position: 2
`)

	assert.Equal(t, 2, lookup(t, rec, "pair").Position, "first child by position")
	assert.Equal(t, []int{3, 2}, positions(t, rec, "pair.right", "pair.left"))
	assert.Equal(t, 4, rec.MaxSize)
}

func TestPreprocess_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format recordio.Format
		fields string
		codes  []string
		// path of the first error, when checked
		path string
	}{
		{
			name:   "two unbounded fields",
			format: recordio.FormatFixedLength,
			fields: `
          - name: a
            length: unbounded
          - name: b
            length: 2
          - name: c
            length: unbounded
`,
			codes: []string{"multiple_indeterminate"},
		},
		{
			name:   "two unbounded occurrences",
			format: recordio.FormatCSV,
			fields: `
          - name: a
            maxOccurs: unbounded
          - name: b
            maxOccurs: unbounded
`,
			codes: []string{"multiple_indeterminate"},
		},
		{
			name:   "missing length",
			format: recordio.FormatFixedLength,
			fields: `
          - name: a
`,
			codes: []string{"missing_length"},
		},
		{
			name:   "unbounded length in a token format",
			format: recordio.FormatCSV,
			fields: `
          - name: a
            length: unbounded
`,
			codes: []string{"unbounded_length"},
		},
		{
			name:   "occursRef not found",
			format: recordio.FormatCSV,
			fields: `
          - name: count
            type: int
          - name: items
            occursRef: cnt
`,
			codes: []string{"occurs_ref_not_found"},
		},
		{
			name:   "occursRef declared later",
			format: recordio.FormatCSV,
			fields: `
          - name: items
            occursRef: count
          - name: count
            type: int
`,
			codes: []string{"occurs_ref_order"},
		},
		{
			name:   "occursRef to a segment",
			format: recordio.FormatCSV,
			fields: `
          - name: group
            fields:
              - name: x
          - name: items
            occursRef: group
`,
			codes: []string{"occurs_ref_not_field"},
		},
		{
			name:   "occursRef to a repeating field",
			format: recordio.FormatCSV,
			fields: `
          - name: count
            type: int
            minOccurs: 2
            maxOccurs: 2
          - name: items
            occursRef: count
`,
			codes: []string{"occurs_ref_repeats"},
		},
		{
			name:   "occursRef to a text field",
			format: recordio.FormatCSV,
			fields: `
          - name: count
            type: string
          - name: items
            occursRef: count
`,
			codes: []string{"occurs_ref_type"},
		},
		{
			name:   "optional child of a repeating segment",
			format: recordio.FormatCSV,
			fields: `
          - name: items
            minOccurs: 3
            maxOccurs: 3
            fields:
              - name: a
              - name: b
                minOccurs: 0
`,
			codes: []string{"repeating_segment_optional_child"},
		},
		{
			name:   "indeterminate child of a repeating segment",
			format: recordio.FormatCSV,
			fields: `
          - name: items
            minOccurs: 2
            maxOccurs: 2
            fields:
              - name: a
                maxOccurs: unbounded
`,
			codes: []string{"repeating_segment_indeterminate_child"},
		},
		{
			name:   "positive until",
			format: recordio.FormatFixedLength,
			fields: `
          - name: a
            length: unbounded
            until: 2
`,
			codes: []string{"until_positive"},
		},
		{
			name:   "until on a fixed field",
			format: recordio.FormatFixedLength,
			fields: `
          - name: a
            length: 3
            until: -1
`,
			codes: []string{"until_not_indeterminate"},
		},
		{
			name:   "until disagrees with followers",
			format: recordio.FormatFixedLength,
			fields: `
          - name: a
            length: unbounded
            until: -4
          - name: b
            length: 8
`,
			codes: []string{"until_mismatch"},
		},
		{
			name:   "mixed positions",
			format: recordio.FormatCSV,
			fields: `
          - name: a
            position: 0
          - name: grp
            position: 1
            fields:
              - name: b
                position: 0
              - name: c
          - name: d
`,
			codes: []string{"mixed_positions"},
			path:  "grp.c",
		},
		{
			name:   "negative position inside a segment",
			format: recordio.FormatFixedLength,
			fields: `
          - name: seg
            position: 0
            fields:
              - name: x
                position: -2
                length: 2
`,
			codes: []string{"negative_position_in_segment"},
		},
		{
			name:   "declaration errors",
			format: recordio.FormatCSV,
			fields: `
          - name: a
            type: integr
`,
			codes: []string{"unknown_type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := preprocess(t, tt.format, tt.fields)
			assert.Equal(t, tt.codes, errorCodes(t, err))

			if tt.path != "" {
				var ce *diagnostic.CompileError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, tt.path, ce.Diagnostics.Errors[0].Path)
			}
		})
	}
}

func TestPreprocess_OccursRefSuggestion(t *testing.T) {
	_, err := preprocess(t, recordio.FormatCSV, `
          - name: count
            type: int
          - name: items
            occursRef: cnt
`)

	var ce *diagnostic.CompileError
	require.ErrorAs(t, err, &ce)
	require.Len(t, ce.Diagnostics.Errors, 1)

	d := ce.Diagnostics.Errors[0]
	assert.Equal(t, "rec", d.Record)
	assert.Equal(t, "items", d.Path)
	assert.Equal(t, []string{"count"}, d.Suggestions)
}

func TestPreprocess_InvalidInput(t *testing.T) {
	_, err := Preprocess(0, &mapping.RecordDef{Name: "r"})
	require.Error(t, err)

	_, err = Preprocess(recordio.FormatCSV, nil)
	require.Error(t, err)
}

func TestPreprocess_Deterministic(t *testing.T) {
	const fields = `
          - name: id
            length: 3
          - name: items
            occursRef: id
            fields:
              - name: a
                length: 2
              - name: b
                length: 1
          - name: tail
            length: 5
`

	def := recordDef(t, fields)

	first, err := Preprocess(recordio.FormatFixedLength, def)
	require.NoError(t, err)

	for range 5 {
		again, err := Preprocess(recordio.FormatFixedLength, def)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPreprocess_OneIndeterminatePerRun(t *testing.T) {
	tests := []string{
		`
          - name: a
            length: unbounded
`,
		`
          - name: a
            length: 2
          - name: b
            length: 2
            maxOccurs: unbounded
          - name: c
            length: 1
`,
		`
          - name: a
            length: 2
          - name: s
            fields:
              - name: x
                length: 1
              - name: "y"
                length: unbounded
          - name: c
            length: 1
`,
	}

	for i, fields := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			rec := mustPreprocess(t, recordio.FormatFixedLength, fields)
			require.NotEqual(t, NoNode, rec.Indeterminate)

			seen := 0

			rec.Walk(func(n *Node, _ int) {
				if n.HasUntil {
					seen++
				}
			})

			assert.Equal(t, 1, seen)
		})
	}
}

func TestComparePosition(t *testing.T) {
	tests := []struct {
		a, b int
		want int
	}{
		{0, 1, -1},
		{1, 0, 1},
		{2, 2, 0},
		{5, -1, -1},
		{-1, 5, 1},
		{-3, -1, -1},
		{-1, -1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ComparePosition(tt.a, tt.b), "%d vs %d", tt.a, tt.b)
	}
}

func TestRecord_SortedChildren(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatFixedLength, `
          - name: body
            position: 2
            length: unbounded
            until: -1
          - name: end
            position: -1
            length: 1
          - name: start
            position: 0
            length: 2
`)

	var names []string
	for _, id := range rec.SortedChildren(rec.Roots) {
		names = append(names, rec.Node(id).Name)
	}

	assert.Equal(t, []string{"start", "body", "end"}, names)
}

func TestRecord_Walk(t *testing.T) {
	rec := mustPreprocess(t, recordio.FormatCSV, `
          - name: a
          - name: s
            fields:
              - name: b
`)

	var got []string

	rec.Walk(func(n *Node, depth int) {
		got = append(got, fmt.Sprintf("%d:%s:%s", depth, n.Kind, n.Name))
	})

	assert.Equal(t, []string{"0:field:a", "0:segment:s", "1:field:b"}, got)
}
