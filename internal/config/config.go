package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Storage   StorageConfig
	Ingest    IngestConfig
	Retrieval RetrievalConfig
	Session   SessionConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port int
}

type GeminiConfig struct {
	// APIKey authorizes both chat and embedding calls. Required.
	APIKey     string
	ChatModel  string
	EmbedModel string
	// EmbedDim is the vector length the embedding model produces. Every row
	// in the transcript table and every query vector must have this length.
	EmbedDim int
}

type StorageConfig struct {
	DataDir string
}

type IngestConfig struct {
	// DataDir is the directory scanned for transcript files.
	DataDir string
	// MaxWords is the chunk size in words.
	MaxWords int
}

type RetrievalConfig struct {
	TopK int
}

type SessionConfig struct {
	// MaxTurns bounds per-session history to this many user/assistant pairs.
	// Oldest pairs are evicted past the bound. 0 disables eviction.
	MaxTurns int
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Gemini: GeminiConfig{
			ChatModel:  "gemini-2.5-flash",
			EmbedModel: "text-embedding-004",
			EmbedDim:   768,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Ingest: IngestConfig{
			DataDir:  "data",
			MaxWords: 300,
		},
		Retrieval: RetrievalConfig{
			TopK: 5,
		},
		Session: SessionConfig{
			MaxTurns: 64,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from defaults, an optional .env file in the
// working directory, and environment variables (REELTALK_*). The Gemini API
// key is required; Load fails when it is absent so misconfiguration surfaces
// at startup instead of on the first model call.
func Load() (Config, error) {
	// Missing .env is fine; real deployments set plain environment variables.
	_ = godotenv.Load()

	cfg := defaults()
	applyEnvOverrides(&cfg)

	// GEMINI_API_KEY is accepted unprefixed for parity with the provider's
	// own documentation; REELTALK_GEMINI_API_KEY wins if both are set.
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Gemini.APIKey == "" {
		return Config{}, fmt.Errorf(
			"missing required config: Gemini API key. Set it via environment variable GEMINI_API_KEY or REELTALK_GEMINI_API_KEY")
	}

	return cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reeltalk"
	}
	return filepath.Join(home, ".reeltalk")
}
