package chat

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"github.com/veselov/reeltalk/internal/agent"
	"github.com/veselov/reeltalk/internal/ingest"
	"github.com/veselov/reeltalk/internal/retrieval"
	"github.com/veselov/reeltalk/internal/session"
	"github.com/veselov/reeltalk/internal/storage"
)

// keywordClient embeds text as keyword counts so related texts land close in
// vector space without a real model.
type keywordClient struct{}

func (keywordClient) Embed(_ context.Context, text string) ([]float32, error) {
	lower := strings.ToLower(text)
	return []float32{
		float32(strings.Count(lower, "cat")),
		float32(strings.Count(lower, "dog")),
		1,
	}, nil
}

// searchingGenerator asks for a transcript search on the first round, then
// answers from the tool result.
type searchingGenerator struct {
	toolResult string
}

func (g *searchingGenerator) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	last := messages[len(messages)-1]
	if last.Role == llms.ChatMessageTypeTool {
		if resp, ok := last.Parts[0].(llms.ToolCallResponse); ok {
			g.toolResult = resp.Content
		}
		return &llms.ContentResponse{Choices: []*llms.ContentChoice{
			{Content: "The videos say cats are great pets."},
		}}, nil
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{
		{ToolCalls: []llms.ToolCall{{
			ID:   "call-1",
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      "search_transcripts",
				Arguments: `{"query":"cats"}`,
			},
		}}},
	}}, nil
}

func TestChatTurnRetrievesIngestedTranscripts(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	files := map[string]string{
		"cat_tips.txt": "Cats are great pets. A cat needs scratching posts and patience.",
		"dog_tips.txt": "Dogs need walks. A dog thrives on routine and training.",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("writing transcript: %v", err)
		}
	}

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	embedder := retrieval.NewEmbedder(keywordClient{}, 3)
	vectors := retrieval.NewSQLiteStore(store.DB())

	n, err := ingest.NewPipeline(embedder, vectors, 300).Run(ctx, dir)
	if err != nil {
		t.Fatalf("running ingest: %v", err)
	}
	if n != 2 {
		t.Fatalf("ingested %d chunks, want 2", n)
	}

	retriever := retrieval.NewRetriever(embedder, vectors)
	gen := &searchingGenerator{}
	ag := agent.New(gen, agent.NewSearchTool(retriever, 1))
	svc := NewService(ag, session.NewStore(64))

	reply, history, err := svc.HandleTurn(ctx, "s1", "Tell me about cats")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}

	if !strings.Contains(gen.toolResult, `"video_id":"cat_tips"`) {
		t.Errorf("search did not surface the cat transcript: %s", gen.toolResult)
	}
	if strings.Contains(gen.toolResult, "embedding") {
		t.Errorf("tool result leaked embedding vectors: %s", gen.toolResult)
	}
	if reply != "The videos say cats are great pets." {
		t.Errorf("reply = %q", reply)
	}
	if len(history) != 2 || history[1].Content != reply {
		t.Errorf("history = %+v", history)
	}
}
