// Package rag orchestrates a single grounded query end to end: embed,
// retrieve, prompt, generate, clean, attribute (§4.8). Its Answer
// method never returns an error — every failure path is folded into a
// {mode: error} Result, per the caller-safe runtime policy (§7).
package rag

import (
	"context"
	"fmt"

	"github.com/aqua777/campus-rag-core/catalog"
	"github.com/aqua777/campus-rag-core/collab"
	"github.com/aqua777/campus-rag-core/metrics"
	"github.com/aqua777/campus-rag-core/model"
	"github.com/aqua777/campus-rag-core/prompt"
	"github.com/aqua777/campus-rag-core/router"
	"github.com/aqua777/campus-rag-core/vectorstore"
)

// Mode mirrors router.Mode for the result tag, plus the RAGPipeline-only
// no_results case (§3 RAGResult / §4.8).
type Mode = router.Mode

const (
	ModeRAG       = router.ModeRAG
	ModeGeneral   = router.ModeGeneral
	ModeNoResults = router.ModeNoResults
	ModeError     = router.ModeError
)

const defaultTopK = 5

const noResultsAnswer = "I couldn't find relevant documents for this question. / Не вдалося знайти відповідні документи для цього питання."

const errorAnswer = "Something went wrong while answering this question. / Під час обробки запиту сталася помилка."

// Timings records the millisecond cost of each pipeline stage (§4.8).
type Timings struct {
	EmbedMs    int64
	RetrieveMs int64
	GenerateMs int64
}

// Source is a deduplicated retrieved document, enriched via
// DocumentCatalog (§4.8 step 7).
type Source struct {
	Document model.Document
}

// Result is the §3 RAGResult value.
type Result struct {
	Mode            Mode
	Answer          string
	RetrievedChunks []vectorstore.Result
	Sources         []Source
	Timings         Timings
	AvgSimilarity   float64
	Error           string
}

// Options configures a single Answer call.
type Options struct {
	TopK   int
	Filter vectorstore.Filter
	Gen    collab.GenerateConfig
}

// Pipeline is the RAGPipeline orchestrator.
type Pipeline struct {
	embedder  collab.Embedder
	generator collab.Generator
	store     *vectorstore.Store
	catalog   *catalog.Catalog
	builder   *prompt.Builder
	clock     collab.Clock
	metrics   *metrics.Metrics
}

// New builds a Pipeline. m may be nil to skip instrumentation.
func New(embedder collab.Embedder, generator collab.Generator, store *vectorstore.Store, cat *catalog.Catalog, builder *prompt.Builder, clock collab.Clock, m *metrics.Metrics) *Pipeline {
	return &Pipeline{embedder: embedder, generator: generator, store: store, catalog: cat, builder: builder, clock: clock, metrics: m}
}

// Answer runs the §4.8 algorithm for a single query. It never returns
// an error: any failure produces a Result with Mode == ModeError.
func (p *Pipeline) Answer(ctx context.Context, query string, opts Options) Result {
	result := p.answer(ctx, query, opts)
	if result.Mode == ModeError && ctx.Err() != nil {
		result.Error = model.ErrCancelled.Error()
	}
	if p.metrics != nil {
		p.metrics.QueryRequestsTotal.WithLabelValues(string(result.Mode)).Inc()
		p.metrics.QueryDurationSeconds.Observe(float64(result.Timings.EmbedMs+result.Timings.RetrieveMs+result.Timings.GenerateMs) / 1000)
	}
	return result
}

func (p *Pipeline) answer(ctx context.Context, query string, opts Options) Result {
	topK := opts.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	t0 := p.clock.NowMillis()
	vec, err := p.embedder.Embed(ctx, query)
	if err != nil {
		return p.errorResult(err)
	}
	t1 := p.clock.NowMillis()

	hits, err := p.store.Search(vec, topK, opts.Filter, vectorstore.ScoreDot)
	if err != nil {
		return p.errorResult(err)
	}
	t2 := p.clock.NowMillis()

	timings := Timings{EmbedMs: t1 - t0, RetrieveMs: t2 - t1}

	if len(hits) == 0 {
		return Result{Mode: ModeNoResults, Answer: noResultsAnswer, Timings: timings}
	}

	chunks := make([]model.Chunk, len(hits))
	for i, h := range hits {
		chunks[i] = h.Chunk
	}
	groundedPrompt := prompt.BuildGroundedPrompt(chunks, query)

	raw, err := p.generator.Generate(ctx, groundedPrompt, opts.Gen)
	if err != nil {
		return p.errorResult(err)
	}
	t3 := p.clock.NowMillis()
	timings.GenerateMs = t3 - t2

	answer := prompt.ExtractResponse(raw)
	sources := p.buildSources(hits)

	var sum float64
	for _, h := range hits {
		sum += float64(h.Score)
	}

	return Result{
		Mode:            ModeRAG,
		Answer:          answer,
		RetrievedChunks: hits,
		Sources:         sources,
		Timings:         timings,
		AvgSimilarity:   sum / float64(len(hits)),
	}
}

func (p *Pipeline) errorResult(err error) Result {
	return Result{Mode: ModeError, Answer: errorAnswer, Error: err.Error()}
}

// buildSources walks hits in order, keeping the first occurrence of
// each document id, enriched via the catalog (§4.8 step 7).
func (p *Pipeline) buildSources(hits []vectorstore.Result) []Source {
	seen := make(map[string]bool, len(hits))
	var sources []Source
	for _, h := range hits {
		if seen[h.Chunk.DocumentID] {
			continue
		}
		seen[h.Chunk.DocumentID] = true
		doc, ok := p.catalog.ByID(h.Chunk.DocumentID)
		if !ok {
			continue
		}
		sources = append(sources, Source{Document: doc})
	}
	return sources
}

// SemanticSearch runs steps 1-2 of Answer only: embed and retrieve, with
// no generation (§4.8 additional operation).
func (p *Pipeline) SemanticSearch(ctx context.Context, query string, topK int, filter vectorstore.Filter) ([]vectorstore.Result, []model.Document, error) {
	if topK <= 0 {
		topK = defaultTopK
	}
	hits, err := router.RetrieveTopK(ctx, p.embedder, p.store, query, topK, filter)
	if err != nil {
		return nil, nil, err
	}
	docs := make([]model.Document, 0, len(hits))
	seen := make(map[string]bool)
	for _, h := range hits {
		if seen[h.Chunk.DocumentID] {
			continue
		}
		seen[h.Chunk.DocumentID] = true
		if d, ok := p.catalog.ByID(h.Chunk.DocumentID); ok {
			docs = append(docs, d)
		}
	}
	return hits, docs, nil
}

// FindSimilarDocuments uses the given document's first chunk vector as a
// stand-in query, searches topK*3 candidates, and returns up to topK
// distinct documents excluding the source document, in order of first
// occurrence (§4.8 additional operation).
func (p *Pipeline) FindSimilarDocuments(documentID string, topK int) ([]model.Document, error) {
	firstChunkID := fmt.Sprintf("%s_chunk_0", documentID)
	seed, ok := p.store.ByID(firstChunkID)
	if !ok {
		return nil, fmt.Errorf("find similar documents: no chunk 0 for document %s: %w", documentID, model.ErrInvalidArgument)
	}

	vec := p.vectorForChunk(seed.ChunkID)
	if vec == nil {
		return nil, fmt.Errorf("find similar documents: embedding unavailable for %s: %w", seed.ChunkID, model.ErrInvalidArgument)
	}

	hits, err := p.store.Search(vec, topK*3, vectorstore.Filter{}, vectorstore.ScoreDot)
	if err != nil {
		return nil, err
	}

	var docs []model.Document
	seen := map[string]bool{documentID: true}
	for _, h := range hits {
		if seen[h.Chunk.DocumentID] {
			continue
		}
		seen[h.Chunk.DocumentID] = true
		if d, ok := p.catalog.ByID(h.Chunk.DocumentID); ok {
			docs = append(docs, d)
		}
		if len(docs) >= topK {
			break
		}
	}
	return docs, nil
}

// vectorForChunk returns the stored vector of chunkID via
// Store.VectorByID; FindSimilarDocuments searches by re-submitting the
// stored chunk's own vector, which Search treats exactly like a query
// vector.
func (p *Pipeline) vectorForChunk(chunkID string) []float32 {
	return p.store.VectorByID(chunkID)
}
