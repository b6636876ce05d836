// Package ollama adapts the llm/ollama client to the collab.Embedder
// and collab.Generator interfaces for a locally-hosted Ollama model
// runtime.
package ollama

import (
	"context"
	"fmt"

	"github.com/aqua777/campus-rag-core/collab"
	"github.com/aqua777/campus-rag-core/llm/models"
	llmollama "github.com/aqua777/campus-rag-core/llm/ollama"
	"github.com/aqua777/campus-rag-core/llm/thinking"
)

// Adapter wraps an llm/ollama.Client for a fixed embedding and
// generation model pair.
type Adapter struct {
	client         *llmollama.Client
	embeddingModel string
	genModel       string
}

var (
	_ collab.Embedder  = (*Adapter)(nil)
	_ collab.Generator = (*Adapter)(nil)
)

// New creates an Adapter. config may be nil to use environment-derived
// defaults (OLLAMA_URL), following llm/models.LLMConfig.
func New(config *models.LLMConfig, embeddingModel, genModel string) (*Adapter, error) {
	var client *llmollama.Client
	var err error
	if config != nil {
		client, err = llmollama.NewClient(config)
	} else {
		client, err = llmollama.NewClient()
	}
	if err != nil {
		return nil, fmt.Errorf("ollama adapter: %w", err)
	}
	return &Adapter{client: client, embeddingModel: embeddingModel, genModel: genModel}, nil
}

// Embed implements collab.Embedder.
func (a *Adapter) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := a.client.Embeddings(ctx, &models.EmbeddingsRequest{
		Model:   a.embeddingModel,
		Content: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	return collab.Normalize(resp.Embeddings), nil
}

// Generate implements collab.Generator via Ollama's /api/generate.
func (a *Adapter) Generate(ctx context.Context, prompt string, cfg collab.GenerateConfig) (string, error) {
	resp, err := a.client.Generate(ctx, &models.GenerateRequest{
		Model:  a.genModel,
		Prompt: prompt,
		Options: models.RequestOptions{
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
			MaxTokens:   cfg.MaxNewTokens,
			TopK:        cfg.TopK,
		},
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	// Reasoning models served through Ollama (deepseek-r1, qwq, ...) emit
	// <think>...</think> traces ahead of the answer; strip them so callers
	// never have to special-case a model's reasoning style.
	response, _ := thinking.ProcessContent(resp.Text)
	return response, nil
}
