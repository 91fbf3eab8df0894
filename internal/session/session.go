// Package session holds the message log for a single conversation.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anchor-corps/chat-relay/internal/model"
)

// Session is one conversation's identity, timing, and message history.
// Exactly one session is live per chat surface; callers replace it on reset.
type Session struct {
	id        string
	startedAt time.Time

	mu       sync.Mutex
	endedAt  time.Time
	messages []model.Message
}

// New creates a session with a fresh id and an empty message log.
// V7 UUIDs combine a timestamp with random bits, which is what the id
// uniqueness contract asks for.
func New() *Session {
	return &Session{
		id:        uuid.Must(uuid.NewV7()).String(),
		startedAt: time.Now(),
	}
}

// ID returns the opaque session identifier.
func (s *Session) ID() string {
	return s.id
}

// StartedAt returns the session creation time.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// EndedAt returns the end timestamp, zero if the session has not ended.
func (s *Session) EndedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt
}

// Append records a message in insertion order, stamped with the current time.
// Empty text is a no-op. System messages are display-only and never stored.
func (s *Session) Append(role model.Role, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if role == model.RoleSystem {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, model.Message{
		Role: role,
		Text: text,
		At:   time.Now(),
	})
}

// End stamps the end time. Messages remain readable afterward.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endedAt = time.Now()
}

// Messages returns a copy of the message log in insertion order.
func (s *Session) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of stored messages.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// HasMessages reports whether any message has been stored.
func (s *Session) HasMessages() bool {
	return s.Len() > 0
}
