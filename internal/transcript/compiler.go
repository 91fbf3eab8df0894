// Package transcript compiles a session's messages into the human-readable
// text delivered to the downstream CRM.
package transcript

import (
	"fmt"
	"strings"
	"time"

	"github.com/anchor-corps/chat-relay/internal/model"
)

// Compile renders a full transcript: session header, metadata, then one line
// per message as "[timestamp] Speaker: text".
//
//	Session ID: 0190...
//	Page: https://example.com/contact
//	Title: Contact us
//	Started at: 2025-01-01T12:00:00Z
//	Ended at: 2025-01-01T12:05:00Z
//
//	Transcript:
//	--------------------------------
//	[2025-01-01T12:00:00Z] User: I have jaw pain
//	[2025-01-01T12:00:02Z] Bot: I am sorry to hear that.
func Compile(t model.Transcript) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Session ID: %s\n", orUnknown(t.SessionID))
	fmt.Fprintf(&sb, "Page: %s\n", t.Meta.Page)
	fmt.Fprintf(&sb, "Title: %s\n", t.Meta.Title)
	fmt.Fprintf(&sb, "Started at: %s\n", stamp(t.StartedAt))
	fmt.Fprintf(&sb, "Ended at: %s\n", stamp(t.EndedAt))
	sb.WriteString("\nTranscript:\n")
	sb.WriteString("--------------------------------\n")

	for _, m := range t.Messages {
		fmt.Fprintf(&sb, "[%s] %s: %s\n", stamp(m.At), speaker(m.Role), m.Text)
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// CompileMessages renders only the message lines, used for the inline
// transcript attached to a lead submission.
func CompileMessages(msgs []model.Message) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", stamp(m.At), leadSpeaker(m.Role), m.Text))
	}
	return strings.Join(lines, "\n")
}

// speaker labels follow the downstream contract: assistant is "Bot",
// everything else is "User".
func speaker(role model.Role) string {
	if role == model.RoleAssistant {
		return "Bot"
	}
	return "User"
}

func leadSpeaker(role model.Role) string {
	switch role {
	case model.RoleAssistant:
		return "Assistant"
	case model.RoleSystem:
		return "System"
	default:
		return "User"
	}
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
