// Package chunk splits cleaned article text into fixed-size word samples.
// Tokens are split on literal spaces only and filtered before buffering.
// The buffer persists across articles; only full samples are emitted.
package chunk

import (
	"strings"

	"github.com/gaurav-prasanna/wikicorpus/core"
)

// trimSet is stripped from both ends of every raw token.
const trimSet = " \t\n"

// stopTokens are lone punctuation marks that never count as words.
var stopTokens = map[string]bool{
	".": true, ",": true, "!": true, "?": true, "": true,
}

// Keep reports whether an already-trimmed token belongs in a sample.
func Keep(token string) bool {
	if stopTokens[token] {
		return false
	}
	// Coarse URL heuristic.
	return !strings.Contains(token, "http")
}

// Chunker groups tokens into samples of exactly Size words.
// The zero value emits one-token samples.
type Chunker struct {
	size int
	buf  []string
}

// New creates a Chunker with the given sample size.
// Defaults to 1 if size <= 0.
func New(size int) *Chunker {
	if size <= 0 {
		size = 1
	}
	return &Chunker{size: size, buf: make([]string, 0, size)}
}

// Size returns the number of tokens per sample.
func (c *Chunker) Size() int {
	return max(c.size, 1)
}

// Ingest tokenizes text, appends the surviving tokens to the buffer, and
// returns every sample completed along the way, plus the number of tokens
// that passed the filter.
func (c *Chunker) Ingest(text string) (samples []core.Sample, kept int) {
	for _, raw := range strings.Split(text, " ") {
		token := strings.Trim(raw, trimSet)
		if !Keep(token) {
			continue
		}
		kept++
		c.buf = append(c.buf, token)
		if len(c.buf) >= c.Size() {
			samples = append(samples, core.Sample{Tokens: c.buf})
			c.buf = make([]string, 0, c.Size())
		}
	}
	return samples, kept
}

// Pending returns the number of buffered tokens not yet part of a sample.
func (c *Chunker) Pending() int {
	return len(c.buf)
}

// Discard clears the buffer and returns the partial sample it held.
// Partial samples are never written.
func (c *Chunker) Discard() []string {
	tail := c.buf
	c.buf = make([]string, 0, c.Size())
	return tail
}
