// Package collab defines the abstract collaborators the core consumes
// but does not implement: the embedding model, the generation model,
// the blob transport, and the wall clock (§6). The core is built
// against these interfaces so it never depends on a concrete model
// runtime, HTTP stack, or browser API.
package collab

import (
	"context"
	"math"
)

// Embedder produces one L2-normalized vector per input string. The
// same model, pooling, and normalization must be used for both the
// offline ingestion pipeline and the runtime; a mismatch silently
// invalidates similarity scores (§4.4).
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Normalize L2-normalizes v in place and returns it. Embedder
// implementations call this on the raw backend vector rather than
// trusting the model to always emit a unit-norm result — VectorStore
// asserts normalization at both load and query time and rejects
// anything that drifts outside its tolerance (§4.5, §9).
func Normalize(v []float32) []float32 {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		return v
	}
	inv := float32(1 / norm)
	for i, x := range v {
		v[i] = x * inv
	}
	return v
}

// GenerateConfig is the enumerated knob set a Generator accepts (§6).
type GenerateConfig struct {
	Temperature       float64
	MaxNewTokens      int
	TopK              int
	TopP              float64
	RepetitionPenalty float64
	DoSample          bool
}

// Generator returns the continuation of prompt, excluding the prompt
// itself.
type Generator interface {
	Generate(ctx context.Context, prompt string, cfg GenerateConfig) (string, error)
}

// BlobFetcher retrieves an opaque byte payload by path — the runtime's
// only way to reach the compressed vector index (§6).
type BlobFetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Clock supplies monotonic millisecond readings for timing breakdowns
// (§6). Abstracted so tests can inject deterministic timings.
type Clock interface {
	NowMillis() int64
}

// TokenCounter estimates the token cost of text for a specific
// generator's budget. Only PromptBuilder calls it; the Chunker has its
// own intrinsic char-based estimator and must never call a TokenCounter
// (§4.3, §9).
type TokenCounter interface {
	Count(text string) int
}
