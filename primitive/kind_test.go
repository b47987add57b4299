package primitive_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-mapper/primitive"
)

func Example() {
	for _, name := range []string{"int", "Long", "boolean", ""} {
		k, _ := primitive.ParseKind(name)
		fmt.Println(k, k.IsInteger())
	}
	fmt.Println(primitive.KindEnum(0))
	// Output:
	// int true
	// int64 true
	// bool false
	// string false
	// KindEnum(0)
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, name := range primitive.Names() {
		k, err := primitive.ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, name, k.String())
		assert.True(t, k.IsValid())
	}

	_, err := primitive.ParseKind("complex128")
	assert.Error(t, err)
}

func TestKindEnum_Bits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 16, primitive.KindUint16.Bits())
	assert.Equal(t, 64, primitive.KindFloat64.Bits())
	assert.Panics(t, func() { primitive.KindString.Bits() })
	assert.True(t, primitive.KindFloat32.IsNumber())
	assert.False(t, primitive.KindFloat32.IsInteger())
}
