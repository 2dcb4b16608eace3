package llm

import (
	"context"
	"testing"

	"github.com/veselov/reeltalk/internal/config"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), config.GeminiConfig{
		ChatModel:  "gemini-2.5-flash",
		EmbedModel: "text-embedding-004",
	})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}
