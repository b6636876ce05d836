// Package collabtest provides in-memory fakes for collab.Embedder,
// collab.Generator, collab.BlobFetcher, and collab.Clock, used across
// the repo's tests in place of a real model runtime. It supersedes the
// teacher's mocks/llm/mock_llm.go, which mocked the four-method
// iface.LLM shape this repo no longer has.
package collabtest

import (
	"context"
	"errors"

	"github.com/aqua777/campus-rag-core/collab"
)

// Embedder returns a fixed or keyed vector regardless of input, unless
// By is set, in which case it looks up the vector by exact text match.
type Embedder struct {
	Vector []float32
	By     map[string][]float32
	Err    error
}

var _ collab.Embedder = (*Embedder)(nil)

func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	if e.By != nil {
		if v, ok := e.By[text]; ok {
			return v, nil
		}
	}
	return e.Vector, nil
}

// Generator echoes a canned response, optionally recording the last
// prompt it was asked to continue.
type Generator struct {
	Response  string
	Err       error
	LastPrompt string
}

var _ collab.Generator = (*Generator)(nil)

func (g *Generator) Generate(_ context.Context, prompt string, _ collab.GenerateConfig) (string, error) {
	g.LastPrompt = prompt
	if g.Err != nil {
		return "", g.Err
	}
	return g.Response, nil
}

// BlobFetcher serves byte payloads from an in-memory map.
type BlobFetcher struct {
	Blobs map[string][]byte
}

var _ collab.BlobFetcher = (*BlobFetcher)(nil)

func (f *BlobFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	b, ok := f.Blobs[path]
	if !ok {
		return nil, errors.New("collabtest: no blob registered for " + path)
	}
	return b, nil
}

// Clock returns a fixed, caller-controlled value.
type Clock struct {
	Millis int64
}

var _ collab.Clock = (*Clock)(nil)

func (c *Clock) NowMillis() int64 { return c.Millis }

// TokenCounter counts whitespace-separated fields, matching the
// teacher's SimpleTokenizer behavior for tests that don't care about
// exact tokenization.
type TokenCounter struct{}

var _ collab.TokenCounter = TokenCounter{}

func (TokenCounter) Count(text string) int {
	count := 0
	inField := false
	for _, r := range text {
		isSpace := r == ' ' || r == '\n' || r == '\t' || r == '\r'
		if !isSpace && !inField {
			count++
			inField = true
		} else if isSpace {
			inField = false
		}
	}
	return count
}
