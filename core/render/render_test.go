package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/wikicorpus/core"
)

func TestTextRenderer(t *testing.T) {
	t.Run("Should join tokens and terminate with CRLF", func(t *testing.T) {
		data, err := NewTextRenderer().Render(core.Sample{Tokens: []string{"Größe", "über", "alles"}})
		require.NoError(t, err)
		assert.Equal(t, "Größe über alles\r\n", string(data))
	})
}

func TestJSONLRenderer(t *testing.T) {
	t.Run("Should write one unescaped object per line", func(t *testing.T) {
		data, err := NewJSONLRenderer().Render(core.Sample{Tokens: []string{"a<b", "東京"}})
		require.NoError(t, err)
		assert.Equal(t, `{"text":"a<b 東京","tokens":2}`+"\n", string(data))
	})
}

func TestForFormat(t *testing.T) {
	testCases := []struct {
		name string
		ext  string
	}{
		{"", ".txt"},
		{"text", ".txt"},
		{"jsonl", ".jsonl"},
	}
	for _, tc := range testCases {
		r, err := ForFormat(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.ext, r.Extension())
	}

	_, err := ForFormat("pdf")
	assert.Error(t, err)
}
