package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	t.Run("Should skip past the outer closer of a nested span", func(t *testing.T) {
		end, err := Scan("{{a{{b}}c}}", 2, "}}", "{{")
		require.NoError(t, err)
		assert.Equal(t, 11, end)
	})

	t.Run("Should stop at the first closer when nesting is disabled", func(t *testing.T) {
		end, err := Scan("{{a{{b}}c}}", 2, "}}", "")
		require.NoError(t, err)
		assert.Equal(t, 8, end)
	})

	t.Run("Should return the index just past the closer", func(t *testing.T) {
		text := "[[Link|label]] more"
		end, err := Scan(text, 2, "]]", "[[")
		require.NoError(t, err)
		assert.Equal(t, " more", text[end:])
	})

	t.Run("Should report an unterminated span", func(t *testing.T) {
		end, err := Scan("[[abc", 2, "]]", "[[")
		require.ErrorIs(t, err, ErrUnclosed)
		assert.Equal(t, 5, end)
	})

	t.Run("Should report unbalanced nesting as unterminated", func(t *testing.T) {
		_, err := Scan("<a <b> c", 1, ">", "<")
		assert.ErrorIs(t, err, ErrUnclosed)
	})

	t.Run("Should treat a closer at the start position as the end", func(t *testing.T) {
		end, err := Scan("]rest", 0, "]", "[")
		require.NoError(t, err)
		assert.Equal(t, 1, end)
	})

	t.Run("Should report unclosed when starting at the end of the text", func(t *testing.T) {
		end, err := Scan("abc", 3, "}}", "{{")
		assert.ErrorIs(t, err, ErrUnclosed)
		assert.Equal(t, 3, end)
	})

	t.Run("Should count an opener that overlaps a closer before de-nesting", func(t *testing.T) {
		// "<" and ">" never overlap, but identical opener and closer do:
		// each position nests and de-nests, so the span never closes.
		_, err := Scan("a'b'c", 0, "'", "'")
		assert.ErrorIs(t, err, ErrUnclosed)
	})

	t.Run("Should handle multi-byte text around delimiters", func(t *testing.T) {
		text := "{{größe|ü}}straße"
		end, err := Scan(text, 2, "}}", "{{")
		require.NoError(t, err)
		assert.Equal(t, "straße", text[end:])
	})

	t.Run("Should reject invalid input", func(t *testing.T) {
		_, err := Scan("abc", 4, "]", "")
		assert.ErrorIs(t, err, ErrBadInput)

		_, err = Scan("abc", -1, "]", "")
		assert.ErrorIs(t, err, ErrBadInput)

		_, err = Scan("abc", 0, "", "")
		assert.ErrorIs(t, err, ErrBadInput)
	})
}

func TestHasPrefixAt(t *testing.T) {
	assert.True(t, HasPrefixAt("a{{b", 1, "{{"))
	assert.False(t, HasPrefixAt("a{{b", 2, "{{"))
	assert.False(t, HasPrefixAt("a{", 1, "{{"))
	assert.False(t, HasPrefixAt("abc", -1, "a"))
	assert.True(t, HasPrefixAt("abc", 3, ""))
}
