// Package render: JSON Lines renderer.
// Writes each sample as one JSON object per line, keeping non-ASCII text and
// markup characters verbatim.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/wikicorpus/core"
)

// sampleJSON is the JSON shape of one sample.
type sampleJSON struct {
	Text   string `json:"text"`
	Tokens int    `json:"tokens"`
}

// JSONLRenderer produces one JSON object per sample.
type JSONLRenderer struct{}

// NewJSONLRenderer creates a JSONLRenderer.
func NewJSONLRenderer() *JSONLRenderer {
	return &JSONLRenderer{}
}

// Render encodes the sample; the encoder appends the trailing newline.
func (r *JSONLRenderer) Render(sample core.Sample) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(sampleJSON{Text: sample.String(), Tokens: sample.Len()}); err != nil {
		return nil, fmt.Errorf("marshaling sample: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for JSON Lines output.
func (r *JSONLRenderer) Extension() string {
	return ".jsonl"
}
