// Command ingest runs the offline pipeline end to end: fetch the
// document index, extract text, chunk it, embed the chunks, and write
// the documents/chunks/embeddings/categories artifacts (§4, §6).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aqua777/campus-rag-core/collab"
	collabollama "github.com/aqua777/campus-rag-core/collab/ollama"
	collabopenai "github.com/aqua777/campus-rag-core/collab/openai"
	"github.com/aqua777/campus-rag-core/ingest/catalogbuild"
	"github.com/aqua777/campus-rag-core/ingest/chunk"
	"github.com/aqua777/campus-rag-core/ingest/embedpipeline"
	"github.com/aqua777/campus-rag-core/ingest/embedpipeline/devstore"
	"github.com/aqua777/campus-rag-core/ingest/extract"
	"github.com/aqua777/campus-rag-core/ingest/fetch"
	"github.com/aqua777/campus-rag-core/llm/models"
	"github.com/aqua777/campus-rag-core/metrics"
	"github.com/aqua777/campus-rag-core/model"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := newIngestCmd().Execute(); err != nil {
		slog.Error("ingest: failed", "error", err)
		os.Exit(1)
	}
}

func newIngestCmd() *cobra.Command {
	var (
		indexURL       string
		outputRoot     string
		provider       string
		embeddingModel string
		enableDevstore bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run the offline RAG ingestion pipeline over the regulations index",
		Long: `ingest discovers document links from a university regulations index
page, downloads and extracts them, chunks the extracted text, embeds
the chunks, and writes documents.json, chunks.json, embeddings.json(.gz),
and categories.json under --output.

Provider selects the embedding backend ("openai" or "ollama"); its URL
and API key are read from the standard OPENAI_URL/OPENAI_API_KEY or
OLLAMA_URL environment variables (there are no flags for them).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), ingestParams{
				indexURL:       indexURL,
				outputRoot:     outputRoot,
				provider:       provider,
				embeddingModel: embeddingModel,
				enableDevstore: enableDevstore,
			})
		},
	}

	cmd.Flags().StringVar(&indexURL, "index-url", "", "URL of the regulations index page (required)")
	cmd.Flags().StringVar(&outputRoot, "output", "./data", "Output directory for downloaded files and artifacts")
	cmd.Flags().StringVar(&provider, "provider", models.OLLAMA, "Embedding provider: openai or ollama")
	cmd.Flags().StringVar(&embeddingModel, "embedding-model", "nomic-embed-text", "Embedding model name")
	cmd.Flags().BoolVar(&enableDevstore, "devstore", false, "Mirror embedded chunks into an in-memory chromem-go collection for inspection")
	_ = cmd.MarkFlagRequired("index-url")

	return cmd
}

type ingestParams struct {
	indexURL       string
	outputRoot     string
	provider       string
	embeddingModel string
	enableDevstore bool
}

func runIngest(ctx context.Context, p ingestParams) error {
	log := slog.Default()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	embedder, err := buildEmbedder(p.provider, p.embeddingModel)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	payloadRoot := filepath.Join(p.outputRoot, "raw")
	fetcher, err := fetch.New(fetch.DefaultConfig(p.indexURL, payloadRoot), log)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	manifest, err := fetcher.Run(ctx)
	if err != nil {
		return fmt.Errorf("ingest: fetch: %w", err)
	}
	recordFetchOutcomes(m, manifest.Documents)
	log.Info("fetch complete", "documents", manifest.TotalCount)

	if err := writeManifest(filepath.Join(p.outputRoot, "documents.json"), manifest); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	extractor := extract.New(log)
	chunker := chunk.New(chunk.DefaultConfig(), log)

	var devMirror *devstore.Mirror
	if p.enableDevstore {
		devMirror, err = devstore.New()
		if err != nil {
			return fmt.Errorf("ingest: %w", err)
		}
	}
	driver := embedpipeline.New(embedder, p.embeddingModel, devMirror, log)

	var allChunks []model.Chunk
	for _, doc := range manifest.Documents {
		if !doc.Downloaded {
			continue
		}
		result, err := extractor.Extract(doc)
		if err != nil {
			m.ExtractionsTotal.WithLabelValues("error").Inc()
			log.Warn("extraction failed", "document_id", doc.ID, "error", err)
			continue
		}
		m.ExtractionsTotal.WithLabelValues("ok").Inc()

		docChunks := chunker.Chunk(doc, result.Text)
		m.ChunksEmitted.Add(float64(len(docChunks)))
		allChunks = append(allChunks, docChunks...)
	}
	log.Info("chunking complete", "chunks", len(allChunks))

	embedded, err := driver.Run(ctx, allChunks)
	if err != nil {
		return fmt.Errorf("ingest: embed: %w", err)
	}
	m.EmbeddingsTotal.WithLabelValues("ok").Add(float64(len(embedded)))
	m.EmbeddingsTotal.WithLabelValues("error").Add(float64(len(allChunks) - len(embedded)))
	log.Info("embedding complete", "embedded", len(embedded), "attempted", len(allChunks))

	if err := embedpipeline.WriteArtifacts(p.outputRoot, chunker.Config(), allChunks, embedded, p.embeddingModel); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	if err := catalogbuild.Write(filepath.Join(p.outputRoot, "categories.json"), manifest.Documents); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	log.Info("ingestion complete", "output", p.outputRoot)
	return nil
}

func buildEmbedder(provider, embeddingModel string) (collab.Embedder, error) {
	switch provider {
	case models.OPENAI:
		return collabopenai.New(nil, embeddingModel, "")
	case models.OLLAMA:
		return collabollama.New(nil, embeddingModel, "")
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

func recordFetchOutcomes(m *metrics.Metrics, documents []model.Document) {
	for _, d := range documents {
		if d.Downloaded {
			m.DocumentsFetched.WithLabelValues("ok").Inc()
		} else {
			m.DocumentsFetched.WithLabelValues("error").Inc()
		}
	}
}

func writeManifest(path string, manifest model.DocumentsManifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal documents manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, data, 0o644)
}
