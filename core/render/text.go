// Package render provides output renderers for the wikicorpus pipeline.
// This file implements the plain-text renderer, one sample per CRLF line.
package render

import (
	"fmt"

	"github.com/gaurav-prasanna/wikicorpus/core"
)

// lineEnd terminates every sample line.
const lineEnd = "\r\n"

// TextRenderer writes a sample as its space-joined tokens plus CRLF.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render returns the joined sample followed by CRLF.
func (r *TextRenderer) Render(sample core.Sample) ([]byte, error) {
	return []byte(sample.String() + lineEnd), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}

// ForFormat returns the renderer registered under name.
func ForFormat(name string) (core.Renderer, error) {
	switch name {
	case "", "text":
		return NewTextRenderer(), nil
	case "jsonl":
		return NewJSONLRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", name)
	}
}
