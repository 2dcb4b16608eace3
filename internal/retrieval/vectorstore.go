package retrieval

import (
	"context"
	"time"
)

// VectorStore is the interface for transcript chunk storage and similarity
// search backends. The default implementation uses SQLite with brute-force
// cosine similarity; the interface keeps ingestion and retrieval decoupled
// from any particular vector database.
type VectorStore interface {
	// Insert appends records to the chunk table. Inserting the same chunk
	// twice produces duplicate rows; callers that re-ingest are expected to
	// call DeleteVideo first.
	Insert(ctx context.Context, records []Record) error

	// Search returns the top-K records most similar to the query vector,
	// ordered by non-increasing similarity. An empty table yields an empty
	// result, not an error.
	Search(ctx context.Context, vector []float32, topK int) ([]ScoredRecord, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// DeleteVideo removes all chunks for a video and reports how many rows
	// were deleted. Unknown video ids delete zero rows without error.
	DeleteVideo(ctx context.Context, videoID string) (int, error)
}

// Record is a persisted transcript chunk with its embedding.
type Record struct {
	ID         string // "<video_id>_<chunk_index>"
	VideoID    string
	ChunkIndex int
	Text       string
	Embedding  []float32
	CreatedAt  time.Time
}

// ScoredRecord is a Record with a similarity score attached.
type ScoredRecord struct {
	Record
	Score float32
}

// RetrievedChunk is the compact projection handed to the language model.
// The embedding is deliberately stripped so it never wastes context tokens.
type RetrievedChunk struct {
	VideoID    string `json:"video_id"`
	ChunkIndex int    `json:"chunk_index"`
	Text       string `json:"text"`
}
