// Command query loads a compiled index and answers questions against
// it interactively, exercising the same RAGPipeline a browser runtime
// would drive through the collab interfaces (§4.8).
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aqua777/campus-rag-core/catalog"
	"github.com/aqua777/campus-rag-core/collab"
	collabollama "github.com/aqua777/campus-rag-core/collab/ollama"
	collabopenai "github.com/aqua777/campus-rag-core/collab/openai"
	"github.com/aqua777/campus-rag-core/llm/models"
	"github.com/aqua777/campus-rag-core/metrics"
	"github.com/aqua777/campus-rag-core/model"
	"github.com/aqua777/campus-rag-core/prompt"
	"github.com/aqua777/campus-rag-core/prompt/tokencounter"
	"github.com/aqua777/campus-rag-core/rag"
	"github.com/aqua777/campus-rag-core/router"
	"github.com/aqua777/campus-rag-core/vectorstore"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := newQueryCmd().Execute(); err != nil {
		slog.Error("query: failed", "error", err)
		os.Exit(1)
	}
}

func newQueryCmd() *cobra.Command {
	var (
		dataDir        string
		provider       string
		embeddingModel string
		genModel       string
		question       string
		forceMode      string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Answer questions against a compiled campus regulations index",
		Long: `query loads documents.json and embeddings.json.gz from --data,
builds the runtime QueryRouter and RAGPipeline, and answers a single
question (--question) or drops into an interactive REPL when no
question is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), queryParams{
				dataDir:        dataDir,
				provider:       provider,
				embeddingModel: embeddingModel,
				genModel:       genModel,
				question:       question,
				forceMode:      forceMode,
			})
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "./data", "Directory containing documents.json and embeddings.json.gz")
	cmd.Flags().StringVar(&provider, "provider", models.OLLAMA, "Model provider: openai or ollama")
	cmd.Flags().StringVar(&embeddingModel, "embedding-model", "nomic-embed-text", "Embedding model name")
	cmd.Flags().StringVar(&genModel, "gen-model", "llama3", "Generation model name")
	cmd.Flags().StringVar(&question, "question", "", "Ask a single question and exit, instead of starting a REPL")
	cmd.Flags().StringVar(&forceMode, "mode", "", "Force routing mode: rag or general (empty lets the router decide)")

	return cmd
}

type queryParams struct {
	dataDir        string
	provider       string
	embeddingModel string
	genModel       string
	question       string
	forceMode      string
}

func runQuery(ctx context.Context, p queryParams) error {
	log := slog.Default()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	embedder, generator, err := buildAdapter(p.provider, p.embeddingModel, p.genModel)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	manifest, err := loadManifest(p.dataDir + "/documents.json")
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	cat := catalog.New(manifest)

	fetcher := localFileFetcher{root: p.dataDir}
	store, err := vectorstore.LoadFrom(ctx, fetcher, "embeddings.json.gz")
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	log.Info("index loaded", "chunks", store.Len(), "dim", store.Dim(), "model", store.Model())

	counter, err := tokencounter.NewTikToken(p.genModel)
	if err != nil {
		log.Warn("falling back to whitespace token counter", "error", err)
		counter = nil
	}
	var tc collab.TokenCounter
	if counter != nil {
		tc = counter
	} else {
		tc = tokencounter.NewSimple()
	}
	builder := prompt.New(tc)

	rt := router.New(embedder, store, router.DefaultThresholds(), m)
	pipeline := rag.New(embedder, generator, store, cat, builder, collab.SystemClock{}, m)

	forced := router.Mode(p.forceMode)

	if p.question != "" {
		return answerOne(ctx, rt, pipeline, p.question, forced)
	}
	return repl(ctx, rt, pipeline, forced)
}

func answerOne(ctx context.Context, rt *router.Router, pipeline *rag.Pipeline, question string, forced router.Mode) error {
	clean, err := prompt.ValidateMessage(question)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	decision := rt.Route(ctx, clean, forced)
	printDecision(decision, clean, pipeline, ctx)
	return nil
}

func repl(ctx context.Context, rt *router.Router, pipeline *rag.Pipeline, forced router.Mode) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("campus-rag query REPL — type a question, or 'exit' to quit.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		clean, err := prompt.ValidateMessage(line)
		if err != nil {
			fmt.Println("invalid message:", err)
			continue
		}
		decision := rt.Route(ctx, clean, forced)
		printDecision(decision, clean, pipeline, ctx)
	}
}

func printDecision(decision router.Decision, question string, pipeline *rag.Pipeline, ctx context.Context) {
	fmt.Printf("[route mode=%s confidence=%.2f reason=%s]\n", decision.Mode, decision.Confidence, decision.Reason)
	if decision.Mode != router.ModeRAG {
		fmt.Println("(general chat — no grounded answer requested)")
		return
	}

	result := pipeline.Answer(ctx, question, rag.Options{})
	fmt.Println(result.Answer)
	if len(result.Sources) > 0 {
		fmt.Println("Sources:")
		for _, s := range result.Sources {
			fmt.Printf("  - %s (%s)\n", s.Document.Title, s.Document.SourceURL)
		}
	}
	fmt.Printf("[timings embed=%dms retrieve=%dms generate=%dms avg_sim=%.3f]\n",
		result.Timings.EmbedMs, result.Timings.RetrieveMs, result.Timings.GenerateMs, result.AvgSimilarity)
}

func buildAdapter(provider, embeddingModel, genModel string) (collab.Embedder, collab.Generator, error) {
	switch provider {
	case models.OPENAI:
		a, err := collabopenai.New(nil, embeddingModel, genModel)
		return a, a, err
	case models.OLLAMA:
		a, err := collabollama.New(nil, embeddingModel, genModel)
		return a, a, err
	default:
		return nil, nil, fmt.Errorf("unknown model provider %q", provider)
	}
}

func loadManifest(path string) (model.DocumentsManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.DocumentsManifest{}, fmt.Errorf("read %s: %w", path, err)
	}
	var manifest model.DocumentsManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return model.DocumentsManifest{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return manifest, nil
}

// localFileFetcher implements collab.BlobFetcher over the local
// filesystem, standing in for the browser-side HTTP blob fetch this
// CLI has no use for.
type localFileFetcher struct {
	root string
}

var _ collab.BlobFetcher = localFileFetcher{}

func (f localFileFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(f.root + "/" + path)
}
