// Package scan finds the end of a delimited span in wikitext.
//
// Offsets are byte offsets. Every delimiter used by the stripper is ASCII, so
// matching byte-wise never lands inside a multi-byte UTF-8 sequence.
package scan

import (
	"errors"
	"fmt"
)

var (
	// ErrUnclosed is returned when the text ends before a closer is found at
	// nesting depth zero.
	ErrUnclosed = errors.New("no closer found")

	// ErrBadInput is returned for an empty closer or an out-of-range start.
	ErrBadInput = errors.New("invalid scan input")
)

// HasPrefixAt reports whether lit occurs in text starting at index i.
func HasPrefixAt(text string, i int, lit string) bool {
	return i >= 0 && i+len(lit) <= len(text) && text[i:i+len(lit)] == lit
}

// Scan returns the index immediately after the closer that matches the span
// starting at start. When opener is non-empty, every occurrence of opener
// raises the nesting depth and must be matched by one extra closer.
//
// The opener is tested before the closer at each position, so a position that
// matches both first nests and then immediately de-nests.
//
// If the text ends first, Scan returns len(text) and ErrUnclosed.
func Scan(text string, start int, closer, opener string) (int, error) {
	if closer == "" {
		return 0, fmt.Errorf("%w: empty closer", ErrBadInput)
	}
	if start < 0 || start > len(text) {
		return 0, fmt.Errorf("%w: start %d outside [0, %d]", ErrBadInput, start, len(text))
	}

	depth := 0
	for i := start; i < len(text); i++ {
		if opener != "" && HasPrefixAt(text, i, opener) {
			depth++
		}
		if HasPrefixAt(text, i, closer) {
			if depth == 0 {
				return i + len(closer), nil
			}
			depth--
		}
	}
	return len(text), ErrUnclosed
}
