package diagnostic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Err(t *testing.T) {
	var d Diagnostics

	require.NoError(t, d.Err())
	assert.True(t, d.IsValid())

	d.AddWarning("W1", "just saying", "header", "")
	require.NoError(t, d.Err())

	d.AddError("occurs-ref-not-found", `occursRef "cnt" not found`, "detail", "items", "count")
	d.AddError("mixed-positions", "mixed positions", "detail", "")

	err := d.Err()
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"occurs-ref-not-found", "mixed-positions"}, ce.Diagnostics.Codes())
	assert.Equal(t,
		`[detail] items: [occurs-ref-not-found] occursRef "cnt" not found (did you mean "count"?); `+
			`[detail]: [mixed-positions] mixed positions`,
		err.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddError("x", "first", "", "")
	b.AddError("y", "second", "", "")
	b.AddWarning("z", "third", "", "")

	a.Merge(b)

	assert.Equal(t, []string{"x", "y"}, a.Codes())
	assert.Len(t, a.Warnings, 1)
	assert.Equal(t, "warning", a.Warnings[0].Severity.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(0).String())
}
