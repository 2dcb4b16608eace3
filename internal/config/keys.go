package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	env   string
	typ   keyType
	apply func(cfg *Config, v any)
}

var specs = []keySpec{
	{
		env: "REELTALK_SERVER_PORT", typ: kInt,
		apply: func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
	},
	{
		env: "REELTALK_GEMINI_API_KEY", typ: kString,
		apply: func(cfg *Config, v any) { cfg.Gemini.APIKey = v.(string) },
	},
	{
		env: "REELTALK_GEMINI_CHAT_MODEL", typ: kString,
		apply: func(cfg *Config, v any) { cfg.Gemini.ChatModel = v.(string) },
	},
	{
		env: "REELTALK_GEMINI_EMBED_MODEL", typ: kString,
		apply: func(cfg *Config, v any) { cfg.Gemini.EmbedModel = v.(string) },
	},
	{
		env: "REELTALK_GEMINI_EMBED_DIM", typ: kInt,
		apply: func(cfg *Config, v any) { cfg.Gemini.EmbedDim = v.(int) },
	},
	{
		env: "REELTALK_DATA_DIR", typ: kString,
		apply: func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
	},
	{
		env: "REELTALK_INGEST_DIR", typ: kString,
		apply: func(cfg *Config, v any) { cfg.Ingest.DataDir = v.(string) },
	},
	{
		env: "REELTALK_INGEST_MAX_WORDS", typ: kInt,
		apply: func(cfg *Config, v any) { cfg.Ingest.MaxWords = v.(int) },
	},
	{
		env: "REELTALK_RETRIEVAL_TOP_K", typ: kInt,
		apply: func(cfg *Config, v any) { cfg.Retrieval.TopK = v.(int) },
	},
	{
		env: "REELTALK_SESSION_MAX_TURNS", typ: kInt,
		apply: func(cfg *Config, v any) { cfg.Session.MaxTurns = v.(int) },
	},
	{
		env: "REELTALK_LOG_LEVEL", typ: kString,
		apply: func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
	},
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
