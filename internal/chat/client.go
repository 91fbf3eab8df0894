// Package chat implements the client-side conversation state machine: one
// live session, a single in-flight send, lead-capture gating, and transcript
// forwarding on end-chat.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/anchor-corps/chat-relay/internal/model"
	"github.com/anchor-corps/chat-relay/internal/reply"
	"github.com/anchor-corps/chat-relay/internal/session"
	"github.com/anchor-corps/chat-relay/internal/transcript"
	"github.com/anchor-corps/chat-relay/pkg/logger"
	"github.com/anchor-corps/chat-relay/pkg/metrics"
)

// Sink receives UI updates from the client. Implementations render messages,
// status text, control state, and the lead prompt.
type Sink interface {
	ShowMessage(role model.Role, text string)
	SetStatus(text string, isError bool)
	SetBusy(busy bool)
	SetLeadVisible(visible bool)
}

// Forwarder delivers transcripts and leads to the relay.
type Forwarder interface {
	Transcript(ctx context.Context, sess *session.Session, meta model.PageMeta)
	Lead(ctx context.Context, payload model.LeadPayload) error
}

// Config holds the fields the client needs, passed explicitly rather than
// read from shared state.
type Config struct {
	APIURL       string
	APIAuthToken string
	ClientID     string
	IntroText    string
	Meta         model.PageMeta
}

// Client orchestrates one conversation against the chat backend.
type Client struct {
	cfg        Config
	httpClient *http.Client
	forwarder  Forwarder
	sink       Sink
	logger     *logger.Logger

	mu      sync.Mutex
	sess    *session.Session
	gate    LeadGate
	sending bool
}

// New creates a chat client with a fresh session. The intro message, when
// configured, is stored like any assistant reply.
func New(cfg Config, httpClient *http.Client, fwd Forwarder, sink Sink, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	c := &Client{
		cfg:        cfg,
		httpClient: httpClient,
		forwarder:  fwd,
		sink:       sink,
		logger:     log,
	}
	c.reset()
	return c
}

// Session returns the live session.
func (c *Client) Session() *session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// LeadVisible reports whether the lead prompt is currently shown.
func (c *Client) LeadVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.Visible()
}

// Submit sends one user message and applies the backend reply. Overlapping
// submissions are dropped while a send is outstanding; failures surface as a
// status line plus a display-only system message, and the client returns to
// idle with no retry.
func (c *Client) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyInput
	}
	if c.cfg.APIURL == "" {
		c.sink.SetStatus("Chatbot is offline.", true)
		return ErrOffline
	}

	c.mu.Lock()
	if c.gate.Blocking() {
		c.mu.Unlock()
		c.sink.SetStatus("Please share your contact details to continue.", true)
		c.sink.SetLeadVisible(true)
		return ErrLeadRequired
	}
	if c.sending {
		c.mu.Unlock()
		return ErrBusy
	}
	c.sending = true
	sess := c.sess
	c.mu.Unlock()

	c.sink.SetBusy(true)
	c.sink.SetStatus("Sending...", false)

	// Optimistic append: the user bubble shows before the call resolves.
	sess.Append(model.RoleUser, text)
	c.sink.ShowMessage(model.RoleUser, text)
	c.mu.Lock()
	c.gate.NoteMessage(model.RoleUser)
	c.mu.Unlock()

	start := time.Now()
	replyText, err := c.send(ctx, sess, text)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.ChatSendDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())

	c.mu.Lock()
	stale := c.sess != sess
	c.sending = false
	c.mu.Unlock()

	defer c.sink.SetBusy(false)

	if stale {
		// The session was reset while the call was in flight. The late
		// result must not be applied to the newer session.
		c.logger.Debug("discarding reply for replaced session",
			zap.String("session_id", sess.ID()),
		)
		return nil
	}

	if err != nil {
		c.sink.ShowMessage(model.RoleSystem, "Something went wrong. Please try again shortly.")
		c.sink.SetStatus(err.Error(), true)
		return err
	}

	sess.Append(model.RoleAssistant, replyText)
	c.sink.ShowMessage(model.RoleAssistant, replyText)
	c.sink.SetStatus("", false)

	c.mu.Lock()
	show := c.gate.NoteMessage(model.RoleAssistant)
	c.mu.Unlock()
	if show {
		c.sink.SetLeadVisible(true)
	}

	return nil
}

// send performs the backend round trip and reply extraction for one message.
// The session history passed to the backend already includes the latest user
// message; it is repeated in a distinguished field per the backend contract.
func (c *Client) send(ctx context.Context, sess *session.Session, latest string) (string, error) {
	stored := sess.Messages()
	msgs := make([]model.ChatMessage, len(stored))
	for i, m := range stored {
		msgs[i] = model.ChatMessage{Role: string(m.Role), Content: m.Text}
	}

	payload := model.ChatRequest{
		SessionID:     sess.ID(),
		ClientID:      c.cfg.ClientID,
		Messages:      msgs,
		LatestMessage: model.ChatMessage{Role: string(model.RoleUser), Content: latest},
		Meta:          c.cfg.Meta,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIAuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIAuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to reach chat backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &BackendError{Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	extracted := reply.Extract(reply.Decode(raw))
	if extracted == "" {
		return "", ErrEmptyReply
	}
	return extracted, nil
}

// EndChat forwards the transcript best-effort and starts a new session.
// Sessions with nothing stored never produce a transcript send.
func (c *Client) EndChat(ctx context.Context) error {
	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()

	if !sess.HasMessages() {
		c.sink.SetStatus("No messages to send yet.", true)
		return ErrNoMessages
	}

	sess.End()
	c.forwarder.Transcript(ctx, sess, c.cfg.Meta)

	c.sink.SetStatus("Transcript sent. Starting a new chat.", false)
	c.Reset()
	return nil
}

// SubmitLead validates and submits captured contact details. Partial forms
// are rejected locally without a network call. A successful submission
// releases the lead gate for the rest of the session.
func (c *Client) SubmitLead(ctx context.Context, name, email, phone string) error {
	c.mu.Lock()
	if c.gate.Submitted() {
		c.mu.Unlock()
		c.sink.SetStatus("Details already sent.", false)
		return nil
	}
	sess := c.sess
	c.mu.Unlock()

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if name == "" || email == "" || phone == "" {
		c.sink.SetStatus("Please fill name, email, and phone.", true)
		return ErrIncompleteLead
	}

	c.sink.SetStatus("Sending...", false)

	payload := model.LeadPayload{
		SessionID:  sess.ID(),
		Name:       name,
		Email:      email,
		Phone:      phone,
		Transcript: transcript.CompileMessages(sess.Messages()),
		Meta: model.TranscriptMeta{
			Page:  c.cfg.Meta.Page,
			Title: c.cfg.Meta.Title,
		},
	}

	if err := c.forwarder.Lead(ctx, payload); err != nil {
		c.sink.SetStatus("Could not send details. Please try again.", true)
		return err
	}

	c.mu.Lock()
	c.gate.MarkSubmitted()
	c.mu.Unlock()

	c.sink.SetLeadVisible(false)
	c.sink.SetStatus("Thanks! We've got your details.", false)
	return nil
}

// Reset replaces the live session and clears gate and status state. An
// in-flight send against the old session resolves but is discarded.
func (c *Client) Reset() {
	c.reset()
}

func (c *Client) reset() {
	c.mu.Lock()
	sess := session.New()
	c.sess = sess
	c.gate.Reset()
	c.mu.Unlock()

	c.sink.SetLeadVisible(false)
	c.sink.SetStatus("", false)

	// The intro does not trip the lead gate: no user message precedes it.
	if c.cfg.IntroText != "" {
		sess.Append(model.RoleAssistant, c.cfg.IntroText)
		c.sink.ShowMessage(model.RoleAssistant, c.cfg.IntroText)
	}
}
