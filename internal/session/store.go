// Package session keeps per-session conversation history in process memory.
// History lives until restart; nothing is persisted.
package session

import (
	"sync"
)

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversation entry.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Store is a concurrency-safe mapping from session id to ordered message
// history. Sessions are created lazily on first append. A single mutex
// serializes map access, so individual appends are atomic; interleaving of
// whole turns from concurrent requests on one session remains possible and
// is documented behavior.
type Store struct {
	mu       sync.Mutex
	sessions map[string][]Message

	// maxTurns bounds history to this many user/assistant pairs; the oldest
	// pair is evicted past the bound. 0 disables eviction.
	maxTurns int
}

// NewStore creates a Store. maxTurns bounds per-session history in
// user/assistant pairs (0 = unbounded).
func NewStore(maxTurns int) *Store {
	return &Store{
		sessions: make(map[string][]Message),
		maxTurns: maxTurns,
	}
}

// Append adds a message to the session, creating the session if needed, and
// returns a copy of the updated history.
func (s *Store) Append(sessionID string, msg Message) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID], msg)

	if s.maxTurns > 0 {
		for len(history) > 2*s.maxTurns {
			history = history[2:]
		}
	}

	s.sessions[sessionID] = history
	return copyMessages(history)
}

// History returns a copy of the session's messages in chronological order.
// An unknown session id yields an empty slice, never an error.
func (s *Store) History(sessionID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyMessages(s.sessions[sessionID])
}

// Len returns the number of messages stored for the session.
func (s *Store) Len(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions[sessionID])
}

func copyMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
