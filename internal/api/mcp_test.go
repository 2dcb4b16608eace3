package api

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/veselov/reeltalk/internal/retrieval"
)

type mockMCPRetriever struct {
	chunks []retrieval.RetrievedChunk
	err    error

	gotTopK int
}

func (m *mockMCPRetriever) Retrieve(_ context.Context, _ string, topK int) ([]retrieval.RetrievedChunk, error) {
	m.gotTopK = topK
	return m.chunks, m.err
}

type mockMCPCounter struct {
	n   int
	err error
}

func (m *mockMCPCounter) Count(context.Context) (int, error) {
	return m.n, m.err
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestMCPSearchTranscripts(t *testing.T) {
	ret := &mockMCPRetriever{chunks: []retrieval.RetrievedChunk{
		{VideoID: "cat_tips", ChunkIndex: 0, Text: "Cats are great pets."},
	}}
	handler := mcpSearchTranscripts(MCPDeps{Retriever: ret, TopK: 5})

	result, err := handler(context.Background(), makeCallToolRequest("search_transcripts", map[string]interface{}{
		"query": "cats",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", toolText(t, result))
	}
	if ret.gotTopK != 5 {
		t.Errorf("topK = %d, want default 5", ret.gotTopK)
	}

	text := toolText(t, result)
	if !strings.Contains(text, `"video_id":"cat_tips"`) {
		t.Errorf("result missing chunk: %s", text)
	}
}

func TestMCPSearchTranscripts_MissingQuery(t *testing.T) {
	handler := mcpSearchTranscripts(MCPDeps{Retriever: &mockMCPRetriever{}, TopK: 5})

	result, err := handler(context.Background(), makeCallToolRequest("search_transcripts", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for missing query")
	}
}

func TestMCPSearchTranscripts_EmptyIndex(t *testing.T) {
	handler := mcpSearchTranscripts(MCPDeps{Retriever: &mockMCPRetriever{}, TopK: 5})

	result, err := handler(context.Background(), makeCallToolRequest("search_transcripts", map[string]interface{}{
		"query": "anything",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := toolText(t, result); got != "[]" {
		t.Errorf("result = %q, want %q", got, "[]")
	}
}

func TestMCPSearchTranscripts_LimitClamped(t *testing.T) {
	ret := &mockMCPRetriever{}
	handler := mcpSearchTranscripts(MCPDeps{Retriever: ret, TopK: 5})

	if _, err := handler(context.Background(), makeCallToolRequest("search_transcripts", map[string]interface{}{
		"query": "cats",
		"limit": 500,
	})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ret.gotTopK != 50 {
		t.Errorf("topK = %d, want clamp to 50", ret.gotTopK)
	}
}

func TestMCPTranscriptStats(t *testing.T) {
	handler := mcpTranscriptStats(MCPDeps{Store: &mockMCPCounter{n: 42}})

	result, err := handler(context.Background(), makeCallToolRequest("transcript_stats", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := toolText(t, result); got != `{"chunks":42}` {
		t.Errorf("result = %q", got)
	}
}

func TestMCPTranscriptStats_Error(t *testing.T) {
	handler := mcpTranscriptStats(MCPDeps{Store: &mockMCPCounter{err: errors.New("db closed")}})

	result, err := handler(context.Background(), makeCallToolRequest("transcript_stats", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error")
	}
}
