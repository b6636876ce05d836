// Package metrics registers the Prometheus instrumentation for the
// offline ingestion pipeline and the runtime RAGPipeline. A single
// Metrics instance is created per process and injected into components
// that need it, so tests can register against a private registry
// instead of the global default.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every counter, gauge, and histogram the core exposes.
type Metrics struct {
	// DocumentsFetched counts Fetcher outcomes, partitioned by
	// "ok"/"error".
	DocumentsFetched *prometheus.CounterVec

	// ExtractionsTotal counts Extractor outcomes, partitioned by
	// "ok"/"error".
	ExtractionsTotal *prometheus.CounterVec

	// ChunksEmitted counts Chunker output.
	ChunksEmitted prometheus.Counter

	// EmbeddingsTotal counts Embedder-driver outcomes, partitioned by
	// "ok"/"error".
	EmbeddingsTotal *prometheus.CounterVec

	// QueryRequestsTotal counts RAGPipeline.Answer calls, partitioned by
	// resulting mode ("rag"/"general"/"no_results"/"error").
	QueryRequestsTotal *prometheus.CounterVec

	// QueryDurationSeconds records end-to-end Answer latency.
	QueryDurationSeconds prometheus.Histogram

	// RouterDecisionsTotal counts QueryRouter.Route outcomes,
	// partitioned by mode.
	RouterDecisionsTotal *prometheus.CounterVec
}

// New registers all metrics against reg and returns the populated
// Metrics. Pass prometheus.DefaultRegisterer in production, or a fresh
// prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DocumentsFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_rag",
			Subsystem: "ingest",
			Name:      "documents_fetched_total",
			Help:      "Documents the Fetcher attempted to download, partitioned by outcome.",
		}, []string{"outcome"}),

		ExtractionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_rag",
			Subsystem: "ingest",
			Name:      "extractions_total",
			Help:      "Documents the Extractor attempted to convert to text, partitioned by outcome.",
		}, []string{"outcome"}),

		ChunksEmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "campus_rag",
			Subsystem: "ingest",
			Name:      "chunks_emitted_total",
			Help:      "Chunks emitted by the Chunker across all documents.",
		}),

		EmbeddingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_rag",
			Subsystem: "ingest",
			Name:      "embeddings_total",
			Help:      "Chunks the Embedder-driver attempted to embed, partitioned by outcome.",
		}, []string{"outcome"}),

		QueryRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_rag",
			Subsystem: "rag",
			Name:      "query_requests_total",
			Help:      "RAGPipeline.Answer calls, partitioned by resulting mode.",
		}, []string{"mode"}),

		QueryDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "campus_rag",
			Subsystem: "rag",
			Name:      "query_duration_seconds",
			Help:      "End-to-end RAGPipeline.Answer latency.",
			Buckets:   prometheus.DefBuckets,
		}),

		RouterDecisionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_rag",
			Subsystem: "rag",
			Name:      "router_decisions_total",
			Help:      "QueryRouter.Route outcomes, partitioned by mode.",
		}, []string{"mode"}),
	}
}
