package transcript

import (
	"strings"
	"testing"
	"time"

	"github.com/anchor-corps/chat-relay/internal/model"
)

func TestCompile(t *testing.T) {
	started := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ended := started.Add(5 * time.Minute)

	tr := model.Transcript{
		SessionID: "sess-1",
		StartedAt: started,
		EndedAt:   ended,
		Meta: model.TranscriptMeta{
			Page:  "https://example.com/contact",
			Title: "Contact us",
		},
		Messages: []model.Message{
			{Role: model.RoleUser, Text: "I have jaw pain", At: started},
			{Role: model.RoleAssistant, Text: "I am sorry to hear that.", At: started.Add(2 * time.Second)},
		},
	}

	got := Compile(tr)
	want := strings.Join([]string{
		"Session ID: sess-1",
		"Page: https://example.com/contact",
		"Title: Contact us",
		"Started at: 2025-01-01T12:00:00Z",
		"Ended at: 2025-01-01T12:05:00Z",
		"",
		"Transcript:",
		"--------------------------------",
		"[2025-01-01T12:00:00Z] User: I have jaw pain",
		"[2025-01-01T12:00:02Z] Bot: I am sorry to hear that.",
	}, "\n")

	if got != want {
		t.Errorf("compiled transcript mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileUnknownSession(t *testing.T) {
	got := Compile(model.Transcript{Messages: []model.Message{}})
	if !strings.HasPrefix(got, "Session ID: unknown") {
		t.Errorf("expected unknown session header, got %q", got)
	}
}

func TestCompileMessages(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	msgs := []model.Message{
		{Role: model.RoleUser, Text: "hello", At: at},
		{Role: model.RoleAssistant, Text: "hi there", At: at},
	}

	got := CompileMessages(msgs)
	want := "[2025-01-01T12:00:00Z] User: hello\n[2025-01-01T12:00:00Z] Assistant: hi there"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
