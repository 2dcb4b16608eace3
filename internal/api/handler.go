// Package api exposes the conversational service over HTTP and MCP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/veselov/reeltalk/internal/session"
)

const maxRequestBodySize = 1 << 20 // 1MB

// ChatService handles a conversation turn against session memory.
type ChatService interface {
	HandleTurn(ctx context.Context, sessionID, userMessage string) (string, []session.Message, error)
	History(sessionID string) []session.Message
}

// ContentGenerator produces viewer-facing copy for a video.
type ContentGenerator interface {
	Describe(ctx context.Context, videoID string) (string, error)
	Tags(ctx context.Context, videoID string) (string, error)
}

// Deps holds the handler dependencies.
type Deps struct {
	Chat    ChatService
	Content ContentGenerator
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Reply   string            `json:"reply"`
	History []session.Message `json:"history"`
}

type videoRequest struct {
	VideoID string `json:"video_id"`
}

// NewHandler returns the HTTP API router.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)

	r.Get("/health", handleHealth)
	r.Post("/chat", handleChat(deps))
	r.Get("/history/{session_id}", handleHistory(deps))
	r.Post("/video/description", handleDescription(deps))
	r.Post("/video/tags", handleTags(deps))

	return r
}

// requestID tags every request with an id for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.SessionID == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "session_id is required")
			return
		}
		if req.Message == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "message is required")
			return
		}

		reply, history, err := deps.Chat.HandleTurn(r.Context(), req.SessionID, req.Message)
		if err != nil {
			slog.Error("chat turn failed",
				"session_id", req.SessionID,
				"request_id", w.Header().Get("X-Request-Id"),
				"error", err,
			)
			httpError(w, http.StatusInternalServerError, "api_error", "failed to generate reply")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse{Reply: reply, History: history})
	}
}

func handleHistory(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session_id")

		// Unknown sessions are indistinguishable from empty ones. The body is
		// the bare message array, not a wrapper object.
		history := deps.Chat.History(sessionID)
		if history == nil {
			history = []session.Message{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(history)
	}
}

func handleDescription(deps Deps) http.HandlerFunc {
	return videoHandler(func(ctx context.Context, videoID string) (string, error) {
		return deps.Content.Describe(ctx, videoID)
	}, "description")
}

func handleTags(deps Deps) http.HandlerFunc {
	return videoHandler(func(ctx context.Context, videoID string) (string, error) {
		return deps.Content.Tags(ctx, videoID)
	}, "tags")
}

func videoHandler(generate func(ctx context.Context, videoID string) (string, error), field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req videoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.VideoID == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "video_id is required")
			return
		}

		out, err := generate(r.Context(), req.VideoID)
		if err != nil {
			slog.Error("content generation failed",
				"video_id", req.VideoID,
				"field", field,
				"request_id", w.Header().Get("X-Request-Id"),
				"error", err,
			)
			httpError(w, http.StatusInternalServerError, "api_error", "failed to generate %s", field)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"video_id": req.VideoID,
			field:      out,
		})
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
