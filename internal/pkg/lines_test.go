package pkg

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	t.Run("Splits lines and drops line endings", func(t *testing.T) {
		reader := bufio.NewReader(strings.NewReader("one\r\ntwo\n\nlast"))

		for _, want := range []string{"one", "two", "", "last"} {
			line, err := ReadLine(reader, 16)
			require.NoError(t, err)
			assert.Equal(t, want, line)
		}

		_, err := ReadLine(reader, 16)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("Long line is skipped as a whole", func(t *testing.T) {
		// Given: a line several times larger than the reader's buffer
		long := strings.Repeat("z", 70<<10)
		reader := bufio.NewReader(strings.NewReader("before\n" + long + "\nafter\n"))

		// When: reading with a small limit
		first, err := ReadLine(reader, 64)
		require.NoError(t, err)

		_, err = ReadLine(reader, 64)

		// Then: the long line is reported and the next call resumes after it
		assert.Equal(t, "before", first)
		assert.ErrorIs(t, err, ErrLineTooLong)

		next, err := ReadLine(reader, 64)
		require.NoError(t, err)
		assert.Equal(t, "after", next)
	})

	t.Run("Long last line without newline", func(t *testing.T) {
		reader := bufio.NewReader(strings.NewReader(strings.Repeat("z", 100)))

		_, err := ReadLine(reader, 10)
		assert.ErrorIs(t, err, ErrLineTooLong)

		_, err = ReadLine(reader, 10)
		assert.ErrorIs(t, err, io.EOF)
	})
}
