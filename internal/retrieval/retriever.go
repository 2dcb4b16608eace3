package retrieval

import (
	"context"
)

// Retriever combines embedding and vector search to find relevant transcript
// passages for a query.
type Retriever struct {
	embedder *Embedder
	store    VectorStore
}

// NewRetriever creates a Retriever backed by the given Embedder and VectorStore.
func NewRetriever(embedder *Embedder, store VectorStore) *Retriever {
	return &Retriever{embedder: embedder, store: store}
}

// Retrieve embeds the query with the shared embedder and returns the top-K
// most similar chunks, vectors stripped. An empty table yields an empty
// result.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]RetrievedChunk, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	scored, err := r.store.Search(ctx, vec, topK)
	if err != nil {
		return nil, err
	}

	chunks := make([]RetrievedChunk, len(scored))
	for i, s := range scored {
		chunks[i] = RetrievedChunk{
			VideoID:    s.VideoID,
			ChunkIndex: s.ChunkIndex,
			Text:       s.Text,
		}
	}
	return chunks, nil
}
