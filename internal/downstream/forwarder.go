// Package downstream delivers compiled transcripts and leads to the CRM
// system behind the relay.
package downstream

import (
	"context"

	"go.uber.org/zap"

	"github.com/anchor-corps/chat-relay/pkg/logger"
)

// Delivery is the downstream contract for one transcript: session identity,
// page metadata, and the compiled transcript text.
type Delivery struct {
	SessionID  string `json:"sessionId"`
	Page       string `json:"page"`
	Title      string `json:"title"`
	Transcript string `json:"transcript"`
}

// LeadDelivery is the downstream contract for one captured lead.
type LeadDelivery struct {
	SessionID  string `json:"sessionId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Page       string `json:"page"`
	Title      string `json:"title"`
	Transcript string `json:"transcript"`
}

// Forwarder delivers to the downstream system. One delivery per call; the
// relay guarantees no retries and no idempotency, so a repeated POST with
// the same session id produces a second delivery.
type Forwarder interface {
	ForwardTranscript(ctx context.Context, d Delivery) error
	ForwardLead(ctx context.Context, d LeadDelivery) error
	Ready() bool
}

// Log is the development forwarder: it records receipt and drops the
// delivery. Only the session id is logged, never transcript content.
type Log struct {
	logger *logger.Logger
}

// NewLog creates a logging forwarder.
func NewLog(log *logger.Logger) *Log {
	return &Log{logger: log}
}

func (l *Log) ForwardTranscript(_ context.Context, d Delivery) error {
	l.logger.Info("transcript received", zap.String("session_id", d.SessionID))
	return nil
}

func (l *Log) ForwardLead(_ context.Context, d LeadDelivery) error {
	l.logger.Info("lead received", zap.String("session_id", d.SessionID))
	return nil
}

func (l *Log) Ready() bool {
	return true
}
