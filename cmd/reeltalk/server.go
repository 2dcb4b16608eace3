package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/veselov/reeltalk/internal/agent"
	"github.com/veselov/reeltalk/internal/api"
	"github.com/veselov/reeltalk/internal/chat"
	"github.com/veselov/reeltalk/internal/config"
	"github.com/veselov/reeltalk/internal/content"
	"github.com/veselov/reeltalk/internal/llm"
	"github.com/veselov/reeltalk/internal/retrieval"
	"github.com/veselov/reeltalk/internal/session"
	"github.com/veselov/reeltalk/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reeltalk server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "reeltalk version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
		}
	}()

	client, err := llm.New(ctx, cfg.Gemini)
	if err != nil {
		return err
	}

	// Retrieval stack: one embedder shared by search and ingest.
	embedder := retrieval.NewEmbedder(client, cfg.Gemini.EmbedDim)
	vectors := retrieval.NewSQLiteStore(store.DB())
	retriever := retrieval.NewRetriever(embedder, vectors)

	searchTool := agent.NewSearchTool(retriever, cfg.Retrieval.TopK)
	ag := agent.New(client, searchTool)

	sessions := session.NewStore(cfg.Session.MaxTurns)
	chatSvc := chat.NewService(ag, sessions)
	contentGen := content.NewGenerator(ag)

	handler := api.NewHandler(api.Deps{
		Chat:    chatSvc,
		Content: contentGen,
	})

	// MCP server over stdio, next to the HTTP API.
	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Retriever: retriever,
		Store:     vectors,
		TopK:      cfg.Retrieval.TopK,
	})
	stdioSrv := server.NewStdioServer(mcpSrv)
	go func() {
		if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("MCP stdio server error", "error", err)
		}
	}()
	slog.Info("MCP server started (stdio transport)")

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "reeltalk listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
