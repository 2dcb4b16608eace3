package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/veselov/reeltalk/internal/retrieval"
)

// MCPRetriever abstracts semantic search for the MCP layer.
type MCPRetriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]retrieval.RetrievedChunk, error)
}

// MCPCounter reports the size of the transcript index.
type MCPCounter interface {
	Count(ctx context.Context) (int, error)
}

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Retriever MCPRetriever
	Store     MCPCounter
	TopK      int
}

// NewMCPServer creates an MCP server exposing transcript search to external
// MCP clients alongside the HTTP API.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"reeltalk",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions("reeltalk — semantic search over a creator's video transcripts."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("search_transcripts",
			mcp.WithDescription("Semantically search the creator's video transcripts and return the most relevant chunks."),
			mcp.WithString("query", mcp.Description("Search query"), mcp.Required()),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 5)")),
		),
		mcpSearchTranscripts(deps),
	)

	s.AddTool(
		mcp.NewTool("transcript_stats",
			mcp.WithDescription("Report how many transcript chunks are currently indexed."),
		),
		mcpTranscriptStats(deps),
	)

	return s
}

func mcpSearchTranscripts(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}

		limit := req.GetInt("limit", deps.TopK)
		if limit <= 0 {
			limit = deps.TopK
		}
		if limit > 50 {
			limit = 50
		}

		chunks, err := deps.Retriever.Retrieve(ctx, query, limit)
		if err != nil {
			return mcpError(fmt.Sprintf("search failed: %v", err)), nil
		}
		if len(chunks) == 0 {
			return mcpText("[]"), nil
		}

		b, err := json.Marshal(chunks)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpTranscriptStats(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n, err := deps.Store.Count(ctx)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to count chunks: %v", err)), nil
		}
		return mcpText(fmt.Sprintf(`{"chunks":%d}`, n)), nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
