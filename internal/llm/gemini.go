// Package llm wraps the Gemini API (via langchaingo) behind the two
// capabilities the rest of the system needs: chat generation with function
// calling, and text embeddings. One Client serves both so ingestion and
// query-time retrieval cannot drift onto different embedding models.
package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/veselov/reeltalk/internal/config"
)

// Client is a Gemini-backed model client.
type Client struct {
	model *googleai.GoogleAI
}

// New constructs the Gemini client. The API key must be present; config.Load
// already enforces this, but the constructor guards against being wired with
// an empty credential.
func New(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is not set")
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.ChatModel),
		googleai.WithDefaultEmbeddingModel(cfg.EmbedModel),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Client{model: model}, nil
}

// GenerateContent forwards to the underlying model. Tool-calling options
// (llms.WithTools) pass straight through; the agent owns the tool loop.
func (c *Client) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	resp, err := c.model.GenerateContent(ctx, messages, options...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	return resp, nil
}

// Embed returns the embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.model.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("gemini embed: got %d vectors for one input", len(vecs))
	}
	return vecs[0], nil
}
