package recordio

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, s *Source) string {
	t.Helper()

	var b strings.Builder

	for {
		c, err := s.ReadRune()
		if err == io.EOF {
			return b.String()
		}

		require.NoError(t, err)
		b.WriteRune(c)
	}
}

func TestSource_ReadAndUnread(t *testing.T) {
	s := NewSource(strings.NewReader("aé"))

	c, err := s.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, 'a', c)

	s.Unread(c)

	p, err := s.Peek()
	require.NoError(t, err)
	assert.Equal(t, 'a', p)

	assert.Equal(t, "aé", readAll(t, s))

	_, err = s.ReadRune()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSource_MarkReset(t *testing.T) {
	s := NewSource(strings.NewReader("#comment\ndata"))

	s.Mark()

	for range 3 {
		_, err := s.ReadRune()
		require.NoError(t, err)
	}

	s.Reset()

	assert.Equal(t, "#comment\ndata", readAll(t, s))
}

func TestSource_UnreadWhileMarked(t *testing.T) {
	s := NewSource(strings.NewReader("abc"))

	s.Mark()

	a, _ := s.ReadRune()
	b, _ := s.ReadRune()
	s.Unread(b)
	assert.Equal(t, 'a', a)

	s.Reset()

	assert.Equal(t, "abc", readAll(t, s))
}

func TestSource_Unmark(t *testing.T) {
	s := NewSource(strings.NewReader("xyz"))

	s.Mark()
	_, _ = s.ReadRune()
	s.Unmark()
	s.Reset()

	assert.Equal(t, "yz", readAll(t, s))
}
