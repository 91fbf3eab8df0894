package downstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anchor-corps/chat-relay/pkg/logger"
)

func TestWebhookForwardTranscript(t *testing.T) {
	var got Delivery
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, "api-key", srv.Client())
	err := wh.ForwardTranscript(context.Background(), Delivery{
		SessionID:  "sess-1",
		Page:       "https://example.com",
		Transcript: "compiled text",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth != "Token api-key" {
		t.Errorf("expected token auth header, got %q", auth)
	}
	if got.SessionID != "sess-1" || got.Transcript != "compiled text" {
		t.Errorf("unexpected delivery: %+v", got)
	}
}

func TestWebhookFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, "", srv.Client())
	if err := wh.ForwardTranscript(context.Background(), Delivery{SessionID: "s"}); err == nil {
		t.Error("expected error for non-2xx webhook response")
	}
}

func TestWebhookReady(t *testing.T) {
	if NewWebhook("", "", nil).Ready() {
		t.Error("unconfigured webhook must not report ready")
	}
	if !NewWebhook("https://crm.example.com/hook", "", nil).Ready() {
		t.Error("configured webhook must report ready")
	}
}

// fakePublisher records published messages.
type fakePublisher struct {
	subjects  []string
	payloads  [][]byte
	failWith  error
	connected bool
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func (f *fakePublisher) IsConnected() bool {
	return f.connected
}

func TestNATSForwarder(t *testing.T) {
	pub := &fakePublisher{connected: true}
	n := NewNATS(pub, "chat.transcript.stored", "chat.lead.stored")

	if err := n.ForwardTranscript(context.Background(), Delivery{SessionID: "s1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.ForwardLead(context.Background(), LeadDelivery{SessionID: "s1", Name: "Jane"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pub.subjects) != 2 ||
		pub.subjects[0] != "chat.transcript.stored" ||
		pub.subjects[1] != "chat.lead.stored" {
		t.Errorf("unexpected subjects: %v", pub.subjects)
	}

	var d Delivery
	if err := json.Unmarshal(pub.payloads[0], &d); err != nil || d.SessionID != "s1" {
		t.Errorf("unexpected transcript payload: %s", pub.payloads[0])
	}

	if !n.Ready() {
		t.Error("expected ready while connected")
	}
	pub.connected = false
	if n.Ready() {
		t.Error("expected not ready while disconnected")
	}
}

func TestNATSPublishFailure(t *testing.T) {
	pub := &fakePublisher{failWith: errors.New("no route")}
	n := NewNATS(pub, "t", "l")
	if err := n.ForwardTranscript(context.Background(), Delivery{}); err == nil {
		t.Error("expected publish failure to propagate")
	}
}

func TestLogForwarder(t *testing.T) {
	l := NewLog(logger.NewNop())
	if err := l.ForwardTranscript(context.Background(), Delivery{SessionID: "s"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := l.ForwardLead(context.Background(), LeadDelivery{SessionID: "s"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !l.Ready() {
		t.Error("log forwarder is always ready")
	}
}
