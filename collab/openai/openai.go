// Package openai adapts the llm/openai client to the collab.Embedder
// and collab.Generator interfaces, so a caller can use OpenAI (or any
// OpenAI-compatible endpoint) as the runtime's model backend without
// the rest of the core ever seeing go-openai's types.
package openai

import (
	"context"
	"fmt"

	"github.com/aqua777/campus-rag-core/collab"
	"github.com/aqua777/campus-rag-core/llm/models"
	llmopenai "github.com/aqua777/campus-rag-core/llm/openai"
)

// Adapter wraps an llm/openai.Client for a fixed embedding and chat
// model pair.
type Adapter struct {
	client         *llmopenai.Client
	embeddingModel string
	chatModel      string
}

var (
	_ collab.Embedder  = (*Adapter)(nil)
	_ collab.Generator = (*Adapter)(nil)
)

// New creates an Adapter. config may be nil to use environment-derived
// defaults (OPENAI_URL, OPENAI_API_KEY), following llm/models.LLMConfig.
func New(config *models.LLMConfig, embeddingModel, chatModel string) (*Adapter, error) {
	var client *llmopenai.Client
	var err error
	if config != nil {
		client, err = llmopenai.NewClient(config)
	} else {
		client, err = llmopenai.NewClient()
	}
	if err != nil {
		return nil, fmt.Errorf("openai adapter: %w", err)
	}
	return &Adapter{client: client, embeddingModel: embeddingModel, chatModel: chatModel}, nil
}

// Embed implements collab.Embedder.
func (a *Adapter) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := a.client.Embeddings(ctx, &models.EmbeddingsRequest{
		Model:   a.embeddingModel,
		Content: text,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embed: %w", err)
	}
	return collab.Normalize(resp.Embeddings), nil
}

// Generate implements collab.Generator via the chat-completion endpoint.
func (a *Adapter) Generate(ctx context.Context, prompt string, cfg collab.GenerateConfig) (string, error) {
	resp, err := a.client.Chat(ctx, &models.ChatRequest{
		Model: a.chatModel,
		Messages: []*models.Message{
			{Role: models.UserRole, Content: prompt},
		},
		Options: models.RequestOptions{
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
			MaxTokens:   cfg.MaxNewTokens,
			TopK:        cfg.TopK,
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	return resp.Content, nil
}
