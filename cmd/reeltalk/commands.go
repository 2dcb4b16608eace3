package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/veselov/reeltalk/internal/config"
	"github.com/veselov/reeltalk/internal/ingest"
	"github.com/veselov/reeltalk/internal/llm"
	"github.com/veselov/reeltalk/internal/retrieval"
	"github.com/veselov/reeltalk/internal/storage"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Ingest transcript files into the vector index",
	Long: `Ingest transcript files into the vector index.

Reads .txt, .md, .html and .pdf files from the transcript directory
(default from config), chunks them, embeds each chunk, and stores the
vectors in the local database. The file name without extension becomes
the video id.

Re-running ingest appends duplicate rows for unchanged files; pass
--reset to delete a video's existing chunks first.

Examples:
  reeltalk ingest
  reeltalk ingest ./transcripts
  reeltalk ingest --reset cat_tips ./transcripts`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reset, _ := cmd.Flags().GetString("reset")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		dir := cfg.Ingest.DataDir
		if len(args) > 0 {
			dir = args[0]
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		client, err := llm.New(ctx, cfg.Gemini)
		if err != nil {
			return err
		}

		embedder := retrieval.NewEmbedder(client, cfg.Gemini.EmbedDim)
		vectors := retrieval.NewSQLiteStore(store.DB())

		if reset != "" {
			n, err := vectors.DeleteVideo(ctx, reset)
			if err != nil {
				return fmt.Errorf("resetting video %s: %w", reset, err)
			}
			printStep("Deleted %d existing chunks for %s", n, reset)
		}

		printStep("Ingesting transcripts from %s", dir)
		pipeline := ingest.NewPipeline(embedder, vectors, cfg.Ingest.MaxWords)
		n, err := pipeline.Run(ctx, dir)
		if err != nil {
			return err
		}
		if n == 0 {
			printWarning("No transcript chunks ingested")
			return nil
		}
		printSuccess("Ingested %d chunks", n)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show reeltalk system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			printError("config error: %v", err)
			return nil
		}

		serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
		client := &http.Client{Timeout: 2 * time.Second}

		resp, err := client.Get(serverURL + "/health")
		if err != nil {
			printStatus("Server", "stopped")
		} else {
			resp.Body.Close()
			if resp.StatusCode == 200 {
				printStatus("Server", "running on port %d", cfg.Server.Port)
			} else {
				printStatus("Server", "error (HTTP %d)", resp.StatusCode)
			}
		}

		printStatus("Chat model", "%s", cfg.Gemini.ChatModel)
		printStatus("Embed model", "%s", cfg.Gemini.EmbedModel)

		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			printStatus("Index", "unavailable (%v)", err)
		} else {
			defer store.Close()
			vectors := retrieval.NewSQLiteStore(store.DB())
			n, err := vectors.Count(context.Background())
			if err != nil {
				printStatus("Index", "unavailable (%v)", err)
			} else {
				printStatus("Index", "%d chunks", n)
			}
		}

		printStatus("Data dir", "%s", cfg.Storage.DataDir)
		printStatus("Transcript dir", "%s", cfg.Ingest.DataDir)
		return nil
	},
}

func init() {
	ingestCmd.Flags().String("reset", "", "delete existing chunks for this video id before ingesting")
}
