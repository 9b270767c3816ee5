// Package core defines the pipeline interfaces for wikicorpus.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"strings"
)

// Article is one fetched page. Text holds the raw wikitext and may be empty.
type Article struct {
	ID    int64
	Title string
	Text  string
}

// Sample is one fixed-length group of tokens written as a single output unit.
type Sample struct {
	Tokens []string
}

// String joins the tokens with single spaces.
func (s Sample) String() string {
	return strings.Join(s.Tokens, " ")
}

// Len returns the number of tokens in the sample.
func (s Sample) Len() int {
	return len(s.Tokens)
}

// RunStats summarizes one pipeline run.
type RunStats struct {
	Articles  int `json:"articles"`
	Malformed int `json:"malformed"`
	Tokens    int `json:"tokens"`
	Samples   int `json:"samples"`
	Dropped   int `json:"dropped"` // tokens left in the buffer at the end of the run
}

// Fetcher retrieves raw article texts.
type Fetcher interface {
	FetchRandom(ctx context.Context, locale string, count int) ([]Article, error)
}

// Stripper removes wiki markup from raw article text. On malformed input it
// returns the text cleaned so far together with a non-nil error.
type Stripper interface {
	Strip(text string) (string, error)
}

// Renderer converts a Sample into the bytes of one output unit.
type Renderer interface {
	Render(sample Sample) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".txt", ".jsonl").
	Extension() string
}

// SampleSink receives rendered samples in order.
type SampleSink interface {
	Write(data []byte) (int, error)
}
