package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrEmptyText is returned when empty or whitespace-only text is submitted
// for embedding. The check happens before any network call.
var ErrEmptyText = errors.New("cannot embed empty text")

// EmbedderClient is the remote embedding endpoint. Satisfied by llm.Client.
type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Embedder validates input and delegates to a remote embedding client.
// Ingestion and query-time retrieval must share one Embedder instance so both
// sides of the similarity search use the same model by construction.
type Embedder struct {
	client EmbedderClient
	dim    int
}

// NewEmbedder creates an Embedder. dim is the expected vector length; a
// response of any other length is rejected (it would poison the table).
func NewEmbedder(client EmbedderClient, dim int) *Embedder {
	return &Embedder{client: client, dim: dim}
}

// Embed returns the embedding vector for a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	vec, err := e.client.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding text: %w", err)
	}
	if e.dim > 0 && len(vec) != e.dim {
		return nil, fmt.Errorf("embedding has %d dimensions, want %d", len(vec), e.dim)
	}
	return vec, nil
}

// EmbedBatch embeds multiple texts concurrently. Unlike Embed it never fails
// the whole batch: each position in the returned slices carries either a
// vector or that text's error, so callers can skip failed items. Returns
// (nil, nil) for empty input.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, []error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vecs := make([][]float32, len(texts))
	errs := make([]error, len(texts))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(4) // Bound concurrency to avoid overwhelming the embedding API.

	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			vec, err := e.Embed(gCtx, text)
			if err != nil {
				errs[i] = err
				return nil
			}
			vecs[i] = vec
			return nil
		})
	}

	// Workers only record errors, so Wait cannot fail.
	g.Wait()
	return vecs, errs
}
