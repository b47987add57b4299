package delimited

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-mapper/internal/recordio"
)

type readResult struct {
	fields []string
	line   int
}

func readRecords(t *testing.T, input string, cfg Config) []readResult {
	t.Helper()

	r, err := NewReader(strings.NewReader(input), cfg)
	require.NoError(t, err)

	var out []readResult

	for {
		fields, err := r.Read()
		if err == io.EOF {
			assert.Equal(t, -1, r.RecordLineNumber())
			return out
		}

		require.NoError(t, err)
		out = append(out, readResult{fields: fields, line: r.RecordLineNumber()})
	}
}

func TestReader_Read(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		modify func(*Config)
		want   []readResult
	}{
		{
			name:  "tab delimited",
			input: "a\tb\tc\nd\te",
			want:  []readResult{{[]string{"a", "b", "c"}, 1}, {[]string{"d", "e"}, 2}},
		},
		{
			name:  "empty input",
			input: "",
		},
		{
			name:  "blank line and trailing delimiter",
			input: "\r\nx\t\r",
			want:  []readResult{{[]string{""}, 1}, {[]string{"x", ""}, 2}},
		},
		{
			name:   "escaped delimiter and escape",
			input:  `a\,b,c\\d,e\f`,
			modify: func(c *Config) { c.Delimiter = ','; c.Escape = '\\' },
			want:   []readResult{{[]string{`a,b`, `c\d`, `e\f`}, 1}},
		},
		{
			name:   "escape at end of input",
			input:  `a,b\`,
			modify: func(c *Config) { c.Delimiter = ','; c.Escape = '\\' },
			want:   []readResult{{[]string{"a", `b\`}, 1}},
		},
		{
			name:   "line continuation joins lines",
			input:  "a,b\\\nc\nd",
			modify: func(c *Config) { c.Delimiter = ','; c.LineContinuation = '\\' },
			want:   []readResult{{[]string{"a", "bc"}, 1}, {[]string{"d"}, 3}},
		},
		{
			name:   "continuation not before terminator is literal",
			input:  `a\b,c`,
			modify: func(c *Config) { c.Delimiter = ','; c.LineContinuation = '\\' },
			want:   []readResult{{[]string{`a\b`, "c"}, 1}},
		},
		{
			name:  "continuation shares escape character",
			input: "a\\,b\\\nc",
			modify: func(c *Config) {
				c.Delimiter = ','
				c.Escape = '\\'
				c.LineContinuation = '\\'
			},
			want: []readResult{{[]string{"a,bc"}, 1}},
		},
		{
			name:   "custom terminator only",
			input:  "a,b\nc;;d",
			modify: func(c *Config) { c.Delimiter = ','; c.RecordTerminator = ";;" },
			want:   []readResult{{[]string{"a", "b\nc"}, 1}, {[]string{"d"}, 2}},
		},
		{
			name:   "comments keep physical line numbers",
			input:  "# one\n# two\na\tb\n#three\nc",
			modify: func(c *Config) { c.Comments = []string{"#"} },
			want:   []readResult{{[]string{"a", "b"}, 3}, {[]string{"c"}, 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.modify != nil {
				tt.modify(&cfg)
			}

			assert.Equal(t, tt.want, readRecords(t, tt.input, cfg))
		})
	}
}

func TestReader_RecordText(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Delimiter = ','
	cfg.LineContinuation = '\\'

	r, err := NewReader(strings.NewReader("a,b\\\r\nc\n"), cfg)
	require.NoError(t, err)

	fields, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "bc"}, fields)
	assert.Equal(t, "a,b\\\r\nc", r.RecordText())
}

func TestReader_DanglingContinuation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  string
	}{
		{name: "at end of input", input: "x\ta\\", text: "x\ta\\"},
		{name: "before final terminator", input: "x\ta\\\n", text: "x\ta\\\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.LineContinuation = '\\'

			r, err := NewReader(strings.NewReader(tt.input), cfg)
			require.NoError(t, err)

			_, err = r.Read()

			var ioErr *recordio.RecordIOError
			require.ErrorAs(t, err, &ioErr)
			assert.True(t, ioErr.IsMalformed())
			assert.Equal(t, 1, ioErr.Line)
			assert.Contains(t, err.Error(), "unexpected end of stream after line continuation")
			assert.Equal(t, tt.text, r.RecordText())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{name: "default", modify: func(*Config) {}, ok: true},
		{name: "escape equals continuation", modify: func(c *Config) { c.Escape = '\\'; c.LineContinuation = '\\' }, ok: true},
		{name: "delimiter equals escape", modify: func(c *Config) { c.Escape = '\t' }},
		{name: "delimiter equals continuation", modify: func(c *Config) { c.LineContinuation = '\t' }},
		{name: "line feed delimiter", modify: func(c *Config) { c.Delimiter = '\n' }},
		{name: "no delimiter", modify: func(c *Config) { c.Delimiter = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			_, err := NewReader(strings.NewReader(""), cfg)
			if tt.ok {
				assert.NoError(t, err)
				return
			}

			var cfgErr *recordio.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}
