// Package chat orchestrates a memory-backed conversation turn: record the
// user's message, replay the whole session as context, run the agent, record
// the reply.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/veselov/reeltalk/internal/session"
)

// Agent produces a reply for a rendered conversation. Satisfied by agent.Agent.
type Agent interface {
	Run(ctx context.Context, input string) (string, error)
}

// Service handles chat turns against the session store.
type Service struct {
	agent    Agent
	sessions *session.Store
}

// NewService creates a chat Service.
func NewService(agent Agent, sessions *session.Store) *Service {
	return &Service{agent: agent, sessions: sessions}
}

// HandleTurn appends the user's message, replays the full history to the
// agent, and appends the reply. The user message is recorded BEFORE
// generation, so a failed generation leaves the session with a trailing
// unanswered user line; the next turn resends it as context.
func (s *Service) HandleTurn(ctx context.Context, sessionID, userMessage string) (string, []session.Message, error) {
	history := s.sessions.Append(sessionID, session.Message{
		Role:    session.RoleUser,
		Content: userMessage,
	})

	reply, err := s.agent.Run(ctx, RenderHistory(history))
	if err != nil {
		return "", nil, fmt.Errorf("generating reply for session %s: %w", sessionID, err)
	}

	history = s.sessions.Append(sessionID, session.Message{
		Role:    session.RoleAssistant,
		Content: reply,
	})

	return reply, history, nil
}

// History returns the session's messages; unknown sessions yield an empty slice.
func (s *Service) History(sessionID string) []session.Message {
	return s.sessions.History(sessionID)
}

// RenderHistory flattens messages into "role: content" lines in chronological
// order. The entire history is resent every turn; cost grows with session
// length until the store's turn bound kicks in.
func RenderHistory(history []session.Message) string {
	var sb strings.Builder
	for i, msg := range history {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(msg.Role))
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
	}
	return sb.String()
}
