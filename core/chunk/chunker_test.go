package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/wikicorpus/core"
)

func texts(samples []core.Sample) []string {
	out := make([]string, 0, len(samples))
	for _, s := range samples {
		out = append(out, s.String())
	}
	return out
}

func TestChunker_Ingest(t *testing.T) {
	t.Run("Should emit full samples and keep the remainder buffered", func(t *testing.T) {
		c := New(2)
		samples, kept := c.Ingest("a b c d e")

		assert.Equal(t, []string{"a b", "c d"}, texts(samples))
		assert.Equal(t, 5, kept)
		assert.Equal(t, 1, c.Pending())
		assert.Equal(t, []string{"e"}, c.Discard())
		assert.Equal(t, 0, c.Pending())
	})

	t.Run("Should filter urls punctuation and empty tokens", func(t *testing.T) {
		c := New(1)
		samples, kept := c.Ingest("http://x . " + " word")

		assert.Equal(t, []string{"word"}, texts(samples))
		assert.Equal(t, 1, kept)
	})

	t.Run("Should carry the buffer across texts", func(t *testing.T) {
		c := New(3)
		first, _ := c.Ingest("one two")
		second, _ := c.Ingest("three four")

		assert.Empty(t, first)
		assert.Equal(t, []string{"one two three"}, texts(second))
		assert.Equal(t, 1, c.Pending())
	})

	t.Run("Should split on spaces only", func(t *testing.T) {
		c := New(2)
		samples, _ := c.Ingest("Title\nBold text\tmore")

		// "Title\nBold" stays one token; trimming only touches the ends.
		assert.Equal(t, []string{"Title\nBold text\tmore"}, texts(samples))
	})

	t.Run("Should trim tabs and newlines from token ends", func(t *testing.T) {
		c := New(2)
		samples, _ := c.Ingest("\nalpha\t \tbeta\n")

		assert.Equal(t, []string{"alpha beta"}, texts(samples))
	})

	t.Run("Should not share backing arrays between samples", func(t *testing.T) {
		c := New(2)
		samples, _ := c.Ingest("a b c d")
		require.Len(t, samples, 2)

		samples[0].Tokens[0] = "changed"
		assert.Equal(t, "c d", samples[1].String())
	})

	t.Run("Should default to one token per sample", func(t *testing.T) {
		c := New(0)
		samples, _ := c.Ingest("x y")
		assert.Equal(t, []string{"x", "y"}, texts(samples))
		assert.Equal(t, 1, c.Size())
	})

	t.Run("Should emit samples from a zero-value chunker", func(t *testing.T) {
		var c Chunker
		samples, kept := c.Ingest("x y")
		assert.Equal(t, []string{"x", "y"}, texts(samples))
		assert.Equal(t, 2, kept)
		assert.Zero(t, c.Pending())
	})
}

func TestKeep(t *testing.T) {
	testCases := []struct {
		token string
		keep  bool
	}{
		{"word", true},
		{"Wörter", true},
		{"1200.", true},
		{".", false},
		{",", false},
		{"!", false},
		{"?", false},
		{"", false},
		{"http://example.org", false},
		{"see:https", false},
		{"HTTP", true},
		{"...", true},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.keep, Keep(tc.token), "token %q", tc.token)
	}
}
