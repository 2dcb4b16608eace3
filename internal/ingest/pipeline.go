package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/veselov/reeltalk/internal/retrieval"
)

// Embedder generates embeddings for chunk batches with per-item errors.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, []error)
}

// VectorInserter is the slice of the vector store the pipeline needs.
type VectorInserter interface {
	Insert(ctx context.Context, records []retrieval.Record) error
}

// Pipeline turns transcript files into embedded chunk rows.
//
// Rows are appended blindly: running the pipeline twice over the same files
// duplicates every chunk. Clearing a video first (DeleteVideo) is the
// caller's job.
type Pipeline struct {
	embedder Embedder
	store    VectorInserter
	maxWords int
	logger   *slog.Logger
}

// NewPipeline creates a Pipeline. If maxWords <= 0 the default of 300 is used.
func NewPipeline(embedder Embedder, store VectorInserter, maxWords int) *Pipeline {
	if maxWords <= 0 {
		maxWords = 300
	}
	return &Pipeline{
		embedder: embedder,
		store:    store,
		maxWords: maxWords,
		logger:   slog.Default(),
	}
}

// Run ingests every transcript under dir and returns the number of chunk rows
// written. A chunk whose embedding call fails is skipped with a warning; the
// file and the run continue. Zero chunks across all files is not an error:
// nothing is written and (0, nil) is returned.
func (p *Pipeline) Run(ctx context.Context, dir string) (int, error) {
	transcripts, err := LoadTranscripts(dir)
	if err != nil {
		return 0, err
	}
	if len(transcripts) == 0 {
		p.logger.Info("no transcript files found", "dir", dir)
		return 0, nil
	}
	p.logger.Info("loaded transcripts", "dir", dir, "files", len(transcripts))

	var rows []retrieval.Record
	for _, tr := range transcripts {
		chunks := ChunkWords(tr.Text, p.maxWords)
		if len(chunks) == 0 {
			continue
		}

		vecs, errs := p.embedder.EmbedBatch(ctx, chunks)
		for idx, chunk := range chunks {
			if errs[idx] != nil {
				p.logger.Warn("failed to embed chunk, skipping",
					"video_id", tr.VideoID, "chunk_index", idx, "error", errs[idx])
				continue
			}
			rows = append(rows, retrieval.Record{
				ID:         fmt.Sprintf("%s_%d", tr.VideoID, idx),
				VideoID:    tr.VideoID,
				ChunkIndex: idx,
				Text:       chunk,
				Embedding:  vecs[idx],
				CreatedAt:  time.Now().UTC(),
			})
		}
	}

	if len(rows) == 0 {
		p.logger.Info("no transcript chunks produced; nothing written",
			"dir", dir, "hint", "put .txt/.md/.html/.pdf transcripts under the data directory")
		return 0, nil
	}

	if err := p.store.Insert(ctx, rows); err != nil {
		return 0, fmt.Errorf("inserting chunks: %w", err)
	}

	p.logger.Info("ingested transcript chunks", "rows", len(rows))
	return len(rows), nil
}
