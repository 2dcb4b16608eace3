package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockVectorStore implements VectorStore for testing.
type mockVectorStore struct {
	searchFn func(ctx context.Context, vector []float32, topK int) ([]ScoredRecord, error)
}

func (m *mockVectorStore) Search(ctx context.Context, vector []float32, topK int) ([]ScoredRecord, error) {
	return m.searchFn(ctx, vector, topK)
}
func (m *mockVectorStore) Insert(_ context.Context, _ []Record) error { return nil }
func (m *mockVectorStore) Count(_ context.Context) (int, error)       { return 0, nil }
func (m *mockVectorStore) DeleteVideo(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func TestRetrieve_StripsVectors(t *testing.T) {
	embedCalls := 0
	client := &mockClient{
		embedFn: func(_ context.Context, _ string) ([]float32, error) {
			embedCalls++
			return makeVector(768), nil
		},
	}

	store := &mockVectorStore{
		searchFn: func(_ context.Context, _ []float32, topK int) ([]ScoredRecord, error) {
			if topK != 5 {
				t.Errorf("topK = %d, want 5", topK)
			}
			return []ScoredRecord{
				{Record: Record{ID: "v1_0", VideoID: "v1", ChunkIndex: 0, Text: "cats are great", Embedding: makeVector(768), CreatedAt: time.Now().UTC()}, Score: 0.9},
				{Record: Record{ID: "v2_3", VideoID: "v2", ChunkIndex: 3, Text: "dogs too", Embedding: makeVector(768), CreatedAt: time.Now().UTC()}, Score: 0.7},
			}, nil
		},
	}

	r := NewRetriever(NewEmbedder(client, 768), store)

	chunks, err := r.Retrieve(context.Background(), "tell me about cats", 5)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if embedCalls != 1 {
		t.Errorf("embed called %d times, want 1", embedCalls)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].VideoID != "v1" || chunks[0].ChunkIndex != 0 || chunks[0].Text != "cats are great" {
		t.Errorf("unexpected first chunk: %+v", chunks[0])
	}
}

func TestRetrieve_EmptyStore(t *testing.T) {
	client := &mockClient{
		embedFn: func(_ context.Context, _ string) ([]float32, error) {
			return makeVector(768), nil
		},
	}
	store := &mockVectorStore{
		searchFn: func(_ context.Context, _ []float32, _ int) ([]ScoredRecord, error) {
			return nil, nil
		},
	}

	r := NewRetriever(NewEmbedder(client, 768), store)
	chunks, err := r.Retrieve(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("got %d chunks, want 0", len(chunks))
	}
}

func TestRetrieve_EmbedErrorPropagates(t *testing.T) {
	client := &mockClient{
		embedFn: func(_ context.Context, _ string) ([]float32, error) {
			return nil, errors.New("embedding api down")
		},
	}
	store := &mockVectorStore{
		searchFn: func(_ context.Context, _ []float32, _ int) ([]ScoredRecord, error) {
			t.Fatal("search should not run when embedding fails")
			return nil, nil
		},
	}

	r := NewRetriever(NewEmbedder(client, 768), store)
	if _, err := r.Retrieve(context.Background(), "query", 5); err == nil {
		t.Fatal("expected error, got nil")
	}
}
