package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/veselov/reeltalk/internal/retrieval"
)

// SearchRetriever is the retrieval capability exposed to the model.
type SearchRetriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]retrieval.RetrievedChunk, error)
}

// NewSearchTool builds the search_transcripts tool: embed the model's query,
// run a top-K similarity search, and hand back compact chunk records as JSON.
func NewSearchTool(retriever SearchRetriever, topK int) Tool {
	return Tool{
		Name:        "search_transcripts",
		Description: searchToolDescription,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Natural language search query",
				},
			},
			"required": []string{"query"},
		},
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				Query string `json:"query"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return "", fmt.Errorf("parsing tool arguments: %w", err)
			}
			if strings.TrimSpace(params.Query) == "" {
				return "", fmt.Errorf("query is required")
			}

			chunks, err := retriever.Retrieve(ctx, params.Query, topK)
			if err != nil {
				return "", fmt.Errorf("searching transcripts: %w", err)
			}
			if chunks == nil {
				chunks = []retrieval.RetrievedChunk{}
			}

			out, err := json.Marshal(chunks)
			if err != nil {
				return "", fmt.Errorf("encoding results: %w", err)
			}
			return string(out), nil
		},
	}
}
