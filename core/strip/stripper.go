// Package strip removes wiki markup from raw article text.
//
// A single left-to-right pass drops isolated formatting characters and skips
// every delimited span recognized by an ordered rule table. Rules are tried
// in order, so longer openers must precede their one-character prefixes.
package strip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/wikicorpus/core/scan"
)

// Rule describes one category of delimited markup.
type Rule struct {
	Name   string
	Opener string
	Closer string
	Nest   string // opener that raises the nesting depth; empty disables nesting
}

// DefaultRules lists the recognized spans in priority order.
var DefaultRules = []Rule{
	{Name: "template", Opener: "{{", Closer: "}}", Nest: "{{"},
	{Name: "link", Opener: "[[", Closer: "]]", Nest: "[["},
	{Name: "table", Opener: "{|", Closer: "|}", Nest: "{|"},
	{Name: "bracket", Opener: "[", Closer: "]", Nest: "["},
	{Name: "tag", Opener: "<", Closer: ">", Nest: "<"},
}

// DefaultDrop holds the header, emphasis and list markers that are removed
// one character at a time.
const DefaultDrop = "='*#"

// MalformedError reports a span whose closer was never found. Everything from
// Offset to the end of the article was discarded.
type MalformedError struct {
	Rule   string
	Offset int
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("unterminated %s at offset %d: %v", e.Rule, e.Offset, scan.ErrUnclosed)
}

func (e *MalformedError) Unwrap() error {
	return scan.ErrUnclosed
}

// Stripper applies a rule table to article text.
type Stripper struct {
	rules []Rule
	drop  string
}

// New creates a Stripper from rules (tried in order) and a set of characters
// to drop.
func New(rules []Rule, drop string) (*Stripper, error) {
	for i, r := range rules {
		if r.Opener == "" || r.Closer == "" {
			return nil, fmt.Errorf("rule %d (%s): opener and closer must be non-empty", i, r.Name)
		}
	}
	return &Stripper{
		rules: append([]Rule(nil), rules...),
		drop:  drop,
	}, nil
}

// Default returns a Stripper configured with DefaultRules and DefaultDrop.
func Default() *Stripper {
	s, _ := New(DefaultRules, DefaultDrop)
	return s
}

// Strip returns text with every recognized span and drop character removed.
// If a span is never closed, the text cleaned up to that span is returned
// together with a *MalformedError.
func (s *Stripper) Strip(text string) (string, error) {
	var out strings.Builder
	out.Grow(len(text))

	i := 0
	for i < len(text) {
		if strings.IndexByte(s.drop, text[i]) >= 0 {
			i++
			continue
		}

		rule, ok := s.match(text, i)
		if !ok {
			out.WriteByte(text[i])
			i++
			continue
		}

		end, err := scan.Scan(text, i+len(rule.Opener), rule.Closer, rule.Nest)
		if err != nil {
			if errors.Is(err, scan.ErrUnclosed) {
				return out.String(), &MalformedError{Rule: rule.Name, Offset: i}
			}
			return out.String(), fmt.Errorf("scanning %s at offset %d: %w", rule.Name, i, err)
		}
		i = end
	}
	return out.String(), nil
}

// match returns the first rule whose opener occurs at i.
func (s *Stripper) match(text string, i int) (Rule, bool) {
	for _, r := range s.rules {
		if scan.HasPrefixAt(text, i, r.Opener) {
			return r, true
		}
	}
	return Rule{}, false
}
