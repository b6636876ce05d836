// Package tokencounter wires textsplitter's tokenizers up as
// collab.TokenCounter implementations for prompt.Builder's chat-history
// truncation. It deliberately has nothing to do with ingest/chunk's
// char/3.5 estimator: the two token estimates are not meant to agree.
package tokencounter

import (
	"github.com/aqua777/campus-rag-core/collab"
	"github.com/aqua777/campus-rag-core/textsplitter"
)

// TikToken adapts textsplitter.TikTokenTokenizer to collab.TokenCounter.
type TikToken struct {
	tok *textsplitter.TikTokenTokenizer
}

var _ collab.TokenCounter = (*TikToken)(nil)

// NewTikToken builds a TikToken counter for the named model's tiktoken
// encoding ("" falls back to gpt-3.5-turbo's).
func NewTikToken(model string) (*TikToken, error) {
	tok, err := textsplitter.NewTikTokenTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TikToken{tok: tok}, nil
}

func (t *TikToken) Count(text string) int {
	return t.tok.Count(text)
}

// Simple adapts textsplitter.SimpleTokenizer to collab.TokenCounter.
// Used where no tiktoken encoding is available (cmd/query's fallback).
type Simple struct {
	tok *textsplitter.SimpleTokenizer
}

var _ collab.TokenCounter = (*Simple)(nil)

func NewSimple() *Simple {
	return &Simple{tok: textsplitter.NewSimpleTokenizer()}
}

func (s *Simple) Count(text string) int {
	return s.tok.Count(text)
}
