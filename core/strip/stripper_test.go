package strip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/wikicorpus/core/scan"
)

func TestStripper_Strip(t *testing.T) {
	s := Default()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Should strip headers emphasis links and templates",
			input:    "=Title=\n'''Bold''' text [[Link|label]] more {{tmpl|x}} end",
			expected: "Title\nBold text  more  end",
		},
		{
			name:     "Should keep plain text untouched",
			input:    "Plain text, with punctuation! And numbers 123.",
			expected: "Plain text, with punctuation! And numbers 123.",
		},
		{
			name:     "Should drop list bullets and numbered markers",
			input:    "* one\n# two\n** three",
			expected: " one\n two\n three",
		},
		{
			name:     "Should skip nested templates",
			input:    "a{{outer|{{inner|x}}|y}}b",
			expected: "ab",
		},
		{
			name:     "Should skip links nested inside file links",
			input:    "[[File:x.jpg|thumb|a [[link]] b]] after",
			expected: " after",
		},
		{
			name:     "Should skip tables",
			input:    "before{|\n|-\n| cell\n|}after",
			expected: "beforeafter",
		},
		{
			name:     "Should skip external links in single brackets",
			input:    "see [http://example.org Example] here",
			expected: "see  here",
		},
		{
			name:     "Should skip tags but keep the text between them",
			input:    "a<ref name=\"x\">cite</ref>b",
			expected: "aciteb",
		},
		{
			name:     "Should keep stray closers",
			input:    "a}}b]]c|}d>e",
			expected: "a}}b]]c|}d>e",
		},
		{
			name:     "Should keep multi-byte characters intact",
			input:    "'''Straße''' in [[München]] — größer",
			expected: "Straße in  — größer",
		},
		{
			name:     "Should return empty output for empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Strip(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestStripper_Malformed(t *testing.T) {
	s := Default()

	t.Run("Should return the text cleaned before an unterminated template", func(t *testing.T) {
		got, err := s.Strip("keep {{tmpl|x and the rest")
		assert.Equal(t, "keep ", got)

		var merr *MalformedError
		require.ErrorAs(t, err, &merr)
		assert.Equal(t, "template", merr.Rule)
		assert.Equal(t, 5, merr.Offset)
		assert.ErrorIs(t, err, scan.ErrUnclosed)
	})

	t.Run("Should classify a lone less-than sign as an unterminated tag", func(t *testing.T) {
		got, err := s.Strip("x < y")
		assert.Equal(t, "x ", got)

		var merr *MalformedError
		require.ErrorAs(t, err, &merr)
		assert.Equal(t, "tag", merr.Rule)
	})

	t.Run("Should not carry state between articles", func(t *testing.T) {
		_, err := s.Strip("[[broken")
		require.Error(t, err)

		got, err := s.Strip("fine [[link]] text")
		require.NoError(t, err)
		assert.Equal(t, "fine  text", got)
	})
}

func TestStripper_Idempotent(t *testing.T) {
	s := Default()
	inputs := []string{
		"=Title=\n'''Bold''' text [[Link|label]] more {{tmpl|x}} end",
		"plain words only",
		"{{Infobox|name=x}}\n== History ==\nThe town was [[founded]] in 1200.<ref>Smith</ref>",
	}
	for _, in := range inputs {
		once, err := s.Strip(in)
		require.NoError(t, err)
		twice, err := s.Strip(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestStripper_Priority(t *testing.T) {
	s := Default()

	t.Run("Should prefer the two-character link opener over the bracket", func(t *testing.T) {
		// Read as a bracket, "[[a]" would end at the first "]".
		got, err := s.Strip("[[a]b]]c")
		require.NoError(t, err)
		assert.Equal(t, "c", got)
	})

	t.Run("Should check templates before tables", func(t *testing.T) {
		got, err := s.Strip("{{|x}}y")
		require.NoError(t, err)
		assert.Equal(t, "y", got)
	})
}

func TestNew(t *testing.T) {
	t.Run("Should support extra rules without changing the loop", func(t *testing.T) {
		rules := append([]Rule{{Name: "comment", Opener: "<!--", Closer: "-->"}}, DefaultRules...)
		s, err := New(rules, DefaultDrop)
		require.NoError(t, err)

		got, err := s.Strip("a<!-- x > y -->b")
		require.NoError(t, err)
		assert.Equal(t, "ab", got)
	})

	t.Run("Should reject rules with empty delimiters", func(t *testing.T) {
		_, err := New([]Rule{{Name: "bad", Opener: "{{"}}, "")
		assert.Error(t, err)
	})

	t.Run("Should not alias the caller's rule slice", func(t *testing.T) {
		rules := []Rule{{Name: "template", Opener: "{{", Closer: "}}", Nest: "{{"}}
		s, err := New(rules, "")
		require.NoError(t, err)
		rules[0].Opener = "(("

		got, err := s.Strip("a{{b}}c")
		require.NoError(t, err)
		assert.Equal(t, "ac", got)
	})
}
