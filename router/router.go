// Package router decides, per query, whether to answer from retrieved
// documents ("rag") or via free chat ("general") based on top-1
// similarity against the vector index (§4.6).
package router

import (
	"context"

	"github.com/aqua777/campus-rag-core/collab"
	"github.com/aqua777/campus-rag-core/metrics"
	"github.com/aqua777/campus-rag-core/vectorstore"
)

// Mode is the routing decision's answering mode (§3 RoutingDecision).
type Mode string

const (
	ModeRAG       Mode = "rag"
	ModeGeneral   Mode = "general"
	ModeNoResults Mode = "no_results"
	ModeError     Mode = "error"
)

// Decision is the §3 RoutingDecision value.
type Decision struct {
	Mode       Mode
	Confidence float64
	Reason     string
	TopChunks  []vectorstore.Result
}

// Thresholds are the tunable similarity cutoffs (§4.6). Changing them
// must not alter any other component's behavior.
type Thresholds struct {
	High float64 // default 0.6
	Low  float64 // default 0.4
}

func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.6, Low: 0.4}
}

// Router decides the answering mode for a query.
type Router struct {
	embedder   collab.Embedder
	store      *vectorstore.Store
	thresholds Thresholds
	metrics    *metrics.Metrics
}

// New builds a Router. m may be nil to skip instrumentation.
func New(embedder collab.Embedder, store *vectorstore.Store, thresholds Thresholds, m *metrics.Metrics) *Router {
	return &Router{embedder: embedder, store: store, thresholds: thresholds, metrics: m}
}

// Route implements the §4.6 algorithm. forcedMode, if non-empty,
// short-circuits the algorithm with confidence 1.0.
func (r *Router) Route(ctx context.Context, query string, forcedMode Mode) Decision {
	decision := r.route(ctx, query, forcedMode)
	if r.metrics != nil {
		r.metrics.RouterDecisionsTotal.WithLabelValues(string(decision.Mode)).Inc()
	}
	return decision
}

func (r *Router) route(ctx context.Context, query string, forcedMode Mode) Decision {
	if forcedMode != "" {
		return Decision{Mode: forcedMode, Confidence: 1.0, Reason: "forced"}
	}

	if r.store.Len() == 0 {
		return Decision{Mode: ModeGeneral, Confidence: 1.0, Reason: "empty_index"}
	}

	top, score, err := retrieveTop1(ctx, r.embedder, r.store, query)
	if err != nil {
		// Router's error-to-general downgrade deliberately differs from
		// RAGPipeline's error-to-error policy (§9).
		return Decision{Mode: ModeGeneral, Confidence: 0.5, Reason: err.Error()}
	}

	switch {
	case score >= r.thresholds.High:
		return Decision{Mode: ModeRAG, Confidence: score, Reason: "above_high_threshold", TopChunks: top}
	case score >= r.thresholds.Low:
		return Decision{Mode: ModeGeneral, Confidence: 1 - score, Reason: "between_thresholds", TopChunks: top}
	default:
		return Decision{Mode: ModeGeneral, Confidence: 1.0, Reason: "below_low_threshold"}
	}
}

// retrieveTop1 embeds query and searches the top-1 match with no
// filters. Only the router calls it; RetrieveTopK below is the helper
// the rag package reuses. Each caller keeps its own error-handling
// policy.
func retrieveTop1(ctx context.Context, embedder collab.Embedder, store *vectorstore.Store, query string) ([]vectorstore.Result, float64, error) {
	vec, err := embedder.Embed(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	results, err := store.Search(vec, 1, vectorstore.Filter{}, vectorstore.ScoreDot)
	if err != nil {
		return nil, 0, err
	}
	if len(results) == 0 {
		return nil, 0, nil
	}
	return results, float64(results[0].Score), nil
}

// RetrieveTopK embeds query and searches the top-K matches with the
// given filter. Exported for reuse by the rag package (§9 shared
// helper), which needs K > 1 and filter support that retrieveTop1 does
// not.
func RetrieveTopK(ctx context.Context, embedder collab.Embedder, store *vectorstore.Store, query string, topK int, filter vectorstore.Filter) ([]vectorstore.Result, error) {
	vec, err := embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return store.Search(vec, topK, filter, vectorstore.ScoreDot)
}
