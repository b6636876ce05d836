// Package vectorstore loads the compressed embeddings artifact into a
// dense in-memory buffer and serves exact, deterministic top-K
// similarity search over it (§4.5). No ANN structure is used: an exact
// O(N·D) scan is required so that search results are reproducible
// across runs and implementations.
package vectorstore

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/aqua777/campus-rag-core/collab"
	"github.com/aqua777/campus-rag-core/model"
)

// Filter restricts candidate chunks by exact-match metadata fields.
// A zero-value field is not applied (§4.5 filter semantics).
type Filter struct {
	Category   model.CategoryID
	Language   model.Language
	DocumentID string
}

func (f Filter) isZero() bool {
	return f.Category == "" && f.Language == "" && f.DocumentID == ""
}

// ScoringMode selects the similarity function. Dot and cosine coincide
// when both vectors are unit-norm, which the store enforces at load.
type ScoringMode int

const (
	ScoreDot ScoringMode = iota
	ScoreCosine
)

// Result is one scored hit from a search.
type Result struct {
	Chunk model.Chunk
	Score float32
}

// Store is the runtime VectorIndex (§3): an ordered sequence of
// EmbeddedChunk hoisted into one contiguous row-major buffer for cache-
// friendly scans, plus the parallel chunk metadata and a by-id index.
type Store struct {
	dim     int
	vectors []float32 // N*dim, row-major
	chunks  []model.Chunk
	byID    map[string]int
	model   string
}

// Load validates and parses an already-decompressed embeddings.json
// document (§4.5 Loader contract). It never trusts the embedder: every
// invariant is re-checked here rather than assumed from the file.
func Load(data []byte) (*Store, error) {
	var file model.EmbeddingsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode embeddings file: %w: %v", model.ErrIndexCorrupt, err)
	}
	if file.EmbeddingDim <= 0 {
		return nil, fmt.Errorf("embeddings file declares no dimension: %w", model.ErrIndexCorrupt)
	}

	dim := file.EmbeddingDim
	vectors := make([]float32, len(file.Chunks)*dim)
	chunks := make([]model.Chunk, len(file.Chunks))
	byID := make(map[string]int, len(file.Chunks))

	for i, ec := range file.Chunks {
		if ec.ChunkID == "" || ec.DocumentID == "" || ec.Text == "" {
			return nil, fmt.Errorf("chunk %d missing required field: %w", i, model.ErrIndexCorrupt)
		}
		if len(ec.Embedding) != dim {
			return nil, fmt.Errorf("chunk %s: embedding length %d != declared dim %d: %w",
				ec.ChunkID, len(ec.Embedding), dim, model.ErrIndexCorrupt)
		}
		if !isNormalized(ec.Embedding) {
			return nil, fmt.Errorf("chunk %s: embedding is not L2-normalized: %w", ec.ChunkID, model.ErrIndexCorrupt)
		}
		copy(vectors[i*dim:(i+1)*dim], ec.Embedding)
		chunks[i] = ec.Chunk
		byID[ec.ChunkID] = i
	}

	return &Store{dim: dim, vectors: vectors, chunks: chunks, byID: byID, model: file.Model}, nil
}

// LoadGzip decompresses a gzip-wrapped embeddings.json.gz blob and
// loads it, as delivered through a collab.BlobFetcher.
func LoadGzip(blob []byte) (*Store, error) {
	r, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("ungzip embeddings blob: %w: %v", model.ErrIndexCorrupt, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ungzip embeddings blob: %w: %v", model.ErrIndexCorrupt, err)
	}
	return Load(data)
}

// LoadFrom fetches path via fetcher and loads it as a gzip-compressed
// index (§6 BlobFetcher usage).
func LoadFrom(ctx context.Context, fetcher collab.BlobFetcher, path string) (*Store, error) {
	blob, err := fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch index blob %s: %w: %v", path, model.ErrIndexCorrupt, err)
	}
	return LoadGzip(blob)
}

const normEpsilon = 1e-3

func isNormalized(v []float32) bool {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	return math.Abs(norm-1) < normEpsilon
}

// Len reports the number of indexed chunks.
func (s *Store) Len() int { return len(s.chunks) }

// VectorByID returns the stored embedding for chunkID, or nil if not
// indexed. Used by rag.FindSimilarDocuments, which searches using a
// stored chunk's own vector as the query (§4.8).
func (s *Store) VectorByID(chunkID string) []float32 {
	i, ok := s.byID[chunkID]
	if !ok {
		return nil
	}
	return s.vectors[i*s.dim : (i+1)*s.dim]
}

// Dim reports the embedding dimension.
func (s *Store) Dim() int { return s.dim }

// Model returns the opaque embedding model identifier recorded at
// ingestion time.
func (s *Store) Model() string { return s.model }

// ByID returns the chunk with the given id, if indexed.
func (s *Store) ByID(chunkID string) (model.Chunk, bool) {
	i, ok := s.byID[chunkID]
	if !ok {
		return model.Chunk{}, false
	}
	return s.chunks[i], true
}

// Search performs an exact top-K scan (§4.5). Ties are broken by
// storage order: the earlier-stored chunk wins. An empty candidate set
// (after filtering) returns an empty, non-error result.
func (s *Store) Search(query []float32, topK int, filter Filter, mode ScoringMode) ([]Result, error) {
	if len(query) != s.dim {
		return nil, fmt.Errorf("query dim %d != index dim %d: %w", len(query), s.dim, model.ErrDimensionMismatch)
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d: %w", topK, model.ErrInvalidArgument)
	}
	if !isNormalized(query) {
		return nil, fmt.Errorf("search: %w", model.ErrQueryNotNormalized)
	}

	qNorm := float32(1)
	if mode == ScoreCosine {
		qNorm = l2Norm(query)
		if qNorm == 0 {
			qNorm = 1
		}
	}

	best := make([]Result, 0, topK)
	for i, c := range s.chunks {
		if !filter.isZero() && !matches(filter, c) {
			continue
		}
		row := s.vectors[i*s.dim : (i+1)*s.dim]
		score := dot(query, row)
		if mode == ScoreCosine {
			rowNorm := l2Norm(row)
			if rowNorm == 0 {
				rowNorm = 1
			}
			score /= qNorm * rowNorm
		}
		best = insertTopK(best, Result{Chunk: c, Score: score}, topK)
	}
	return best, nil
}

func matches(f Filter, c model.Chunk) bool {
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Language != "" && c.Language != f.Language {
		return false
	}
	if f.DocumentID != "" && c.DocumentID != f.DocumentID {
		return false
	}
	return true
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func l2Norm(v []float32) float32 {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	return float32(math.Sqrt(float64(sum)))
}

// insertTopK maintains `sorted` as the top-K results seen so far, in
// strictly decreasing score order with storage-order tie-breaking. It
// runs in O(K) per call, O(N·K) overall — acceptable at this corpus's
// scale and simpler than a heap for the determinism this spec demands.
func insertTopK(sorted []Result, candidate Result, topK int) []Result {
	pos := len(sorted)
	for pos > 0 && less(sorted[pos-1], candidate) {
		pos--
	}
	if pos >= topK {
		return sorted
	}
	sorted = append(sorted, Result{})
	copy(sorted[pos+1:], sorted[pos:len(sorted)-1])
	sorted[pos] = candidate
	if len(sorted) > topK {
		sorted = sorted[:topK]
	}
	return sorted
}

// less reports whether a sorts before (scores higher priority than) b:
// strictly higher score wins; equal scores keep storage order, which
// insertTopK already guarantees by construction (a was inserted first).
func less(a, b Result) bool {
	return a.Score < b.Score
}
