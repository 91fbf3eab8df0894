package forward

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anchor-corps/chat-relay/internal/model"
	"github.com/anchor-corps/chat-relay/internal/session"
	"github.com/anchor-corps/chat-relay/pkg/logger"
)

func populatedSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New()
	s.Append(model.RoleUser, "hello")
	s.Append(model.RoleAssistant, "hi there")
	return s
}

func TestTranscriptPostsPayload(t *testing.T) {
	var calls int32
	var got model.TranscriptPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sess := populatedSession(t)
	f := New(Config{
		TranscriptURL: srv.URL,
		ClientID:      "client-1",
		Token:         "secret",
	}, srv.Client(), logger.NewNop())

	f.Transcript(context.Background(), sess, model.PageMeta{Page: "https://example.com", Title: "Example"})

	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected exactly 1 POST, got %d", calls)
	}
	if got.ClientID != "client-1" || got.Token != "secret" {
		t.Errorf("unexpected identity fields: %+v", got)
	}
	if got.Transcript.SessionID != sess.ID() {
		t.Errorf("expected session id %q, got %q", sess.ID(), got.Transcript.SessionID)
	}
	if len(got.Transcript.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got.Transcript.Messages))
	}
	if got.Transcript.Messages[0].Text != "hello" || got.Transcript.Messages[1].Text != "hi there" {
		t.Errorf("messages out of order: %+v", got.Transcript.Messages)
	}
	if got.Transcript.EndedAt.IsZero() {
		t.Error("expected endedAt stamped on forward")
	}
	if got.Transcript.Meta.Page != "https://example.com" {
		t.Errorf("unexpected meta: %+v", got.Transcript.Meta)
	}
}

func TestTranscriptSkipsEmptySession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected for an empty session")
	}))
	defer srv.Close()

	f := New(Config{TranscriptURL: srv.URL}, srv.Client(), logger.NewNop())
	f.Transcript(context.Background(), session.New(), model.PageMeta{})
}

func TestTranscriptSkipsWhenUnconfigured(t *testing.T) {
	f := New(Config{}, nil, logger.NewNop())
	// Must not panic or attempt delivery.
	f.Transcript(context.Background(), populatedSession(t), model.PageMeta{})
}

func TestTranscriptSwallowsFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := New(Config{TranscriptURL: srv.URL}, srv.Client(), logger.NewNop())
	// Best-effort by contract: the attempt happens, the failure does not
	// propagate.
	f.Transcript(context.Background(), populatedSession(t), model.PageMeta{})

	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected the delivery attempt to happen, got %d calls", calls)
	}
}

func TestLeadSuccess(t *testing.T) {
	var got model.LeadPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	f := New(Config{
		TranscriptURL: srv.URL,
		ClientID:      "client-1",
		Token:         "secret",
	}, srv.Client(), logger.NewNop())

	err := f.Lead(context.Background(), model.LeadPayload{
		SessionID: "sess-1",
		Name:      "Jane",
		Email:     "jane@example.com",
		Phone:     "555-0100",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Identity is stamped by the forwarder; leads fall back to the
	// transcript endpoint when no dedicated lead URL is set.
	if got.ClientID != "client-1" || got.Token != "secret" {
		t.Errorf("identity not stamped: %+v", got)
	}
	if got.Name != "Jane" {
		t.Errorf("unexpected lead: %+v", got)
	}
}

func TestLeadFailureReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	f := New(Config{TranscriptURL: srv.URL}, srv.Client(), logger.NewNop())
	if err := f.Lead(context.Background(), model.LeadPayload{Name: "J", Email: "e", Phone: "p"}); err == nil {
		t.Error("expected error for non-2xx lead submission")
	}
}
