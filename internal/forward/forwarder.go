// Package forward submits transcripts and captured leads from the client
// side to the relay endpoint.
package forward

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/anchor-corps/chat-relay/internal/model"
	"github.com/anchor-corps/chat-relay/internal/session"
	"github.com/anchor-corps/chat-relay/pkg/logger"
)

// Config holds the forwarding endpoints and identity for one widget install.
type Config struct {
	TranscriptURL string
	LeadURL       string
	ClientID      string
	Token         string
}

// Forwarder posts transcript and lead payloads to the relay.
type Forwarder struct {
	cfg    Config
	client *http.Client
	logger *logger.Logger
}

// New creates a forwarder. A nil httpClient falls back to a default with a
// short timeout; transcript delivery must never hang the end-chat action.
func New(cfg Config, httpClient *http.Client, log *logger.Logger) *Forwarder {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.LeadURL == "" {
		// The widget historically posts leads to the same endpoint host.
		cfg.LeadURL = cfg.TranscriptURL
	}
	return &Forwarder{
		cfg:    cfg,
		client: httpClient,
		logger: log,
	}
}

// Transcript serializes the session and posts it to the relay, best-effort.
// The result is discarded by contract: delivery failures are swallowed so
// transport errors cannot surface conversation content, and the end-chat
// action never blocks on relay availability. It is a no-op when no endpoint
// is configured or the session has no stored messages.
func (f *Forwarder) Transcript(ctx context.Context, sess *session.Session, meta model.PageMeta) {
	if f.cfg.TranscriptURL == "" {
		return
	}
	if !sess.HasMessages() {
		return
	}

	endedAt := sess.EndedAt()
	if endedAt.IsZero() {
		endedAt = time.Now()
	}

	payload := model.TranscriptPayload{
		ClientID: f.cfg.ClientID,
		Token:    f.cfg.Token,
		Transcript: model.Transcript{
			SessionID: sess.ID(),
			StartedAt: sess.StartedAt(),
			EndedAt:   endedAt,
			Meta: model.TranscriptMeta{
				Page:  meta.Page,
				Title: meta.Title,
			},
			Messages: sess.Messages(),
		},
	}

	if err := f.post(ctx, f.cfg.TranscriptURL, payload); err != nil {
		// Outcome only; never the payload.
		f.logger.Debug("transcript forward failed",
			zap.String("session_id", sess.ID()),
			zap.Error(err),
		)
		return
	}

	f.logger.Debug("transcript forwarded", zap.String("session_id", sess.ID()))
}

// Lead submits captured contact details together with an inline transcript.
// Unlike Transcript, failures are returned: the visitor is waiting on the
// lead form and needs to know whether to retry.
func (f *Forwarder) Lead(ctx context.Context, payload model.LeadPayload) error {
	if f.cfg.LeadURL == "" {
		return fmt.Errorf("no lead endpoint configured")
	}

	payload.ClientID = f.cfg.ClientID
	payload.Token = f.cfg.Token

	if err := f.post(ctx, f.cfg.LeadURL, payload); err != nil {
		return fmt.Errorf("lead submit failed: %w", err)
	}
	return nil
}

func (f *Forwarder) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}
	return nil
}
