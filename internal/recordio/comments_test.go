package recordio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipComments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		prefixes []string
		skipped  int
		rest     string
	}{
		{name: "no prefixes", input: "#a\nb", prefixes: nil, skipped: 0, rest: "#a\nb"},
		{name: "single comment", input: "#a\nb", prefixes: []string{"#"}, skipped: 1, rest: "b"},
		{name: "several comments", input: "#a\r\n//b\nc", prefixes: []string{"#", "//"}, skipped: 2, rest: "c"},
		{name: "comment at eof", input: "#only", prefixes: []string{"#"}, skipped: 1, rest: ""},
		{name: "prefix longer than input", input: "/", prefixes: []string{"//"}, skipped: 0, rest: "/"},
		{name: "not at line start", input: "a#b", prefixes: []string{"#"}, skipped: 0, rest: "a#b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSource(strings.NewReader(tt.input))

			skipped, err := SkipComments(s, tt.prefixes, LineEnd{})
			require.NoError(t, err)
			assert.Equal(t, tt.skipped, skipped)
			assert.Equal(t, tt.rest, readAll(t, s))
		})
	}
}

func TestSkipComments_CustomTerminator(t *testing.T) {
	s := NewSource(strings.NewReader("#x\ny|z"))

	skipped, err := SkipComments(s, []string{"#"}, NewLineEnd("|"))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "z", readAll(t, s))
}
