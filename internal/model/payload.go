package model

import (
	"time"
)

// PageMeta carries page context and the business fields configured for the widget.
// It is attached to every outbound chat request and to forwarded transcripts.
type PageMeta struct {
	Page             string `json:"page"`
	Title            string `json:"title"`
	BusinessName     string `json:"businessName,omitempty"`
	BusinessLocation string `json:"businessLocation,omitempty"`
	BusinessPhone    string `json:"businessPhone,omitempty"`
	BusinessEmail    string `json:"businessEmail,omitempty"`
	Context          string `json:"context,omitempty"`
}

// TranscriptMeta is the subset of page metadata forwarded with a transcript.
type TranscriptMeta struct {
	Page  string `json:"page"`
	Title string `json:"title"`
}

// Transcript is the serialized rendering of a finished session.
type Transcript struct {
	SessionID string         `json:"sessionId"`
	StartedAt time.Time      `json:"startedAt"`
	EndedAt   time.Time      `json:"endedAt"`
	Meta      TranscriptMeta `json:"meta"`
	Messages  []Message      `json:"messages"`
}

// TranscriptPayload is the wire entity posted to the relay's transcript endpoint.
type TranscriptPayload struct {
	ClientID   string     `json:"clientId"`
	Token      string     `json:"token"`
	Transcript Transcript `json:"transcript"`
}

// LeadPayload is the wire entity posted to the relay's lead endpoint.
// Name, email, and phone are all required.
type LeadPayload struct {
	ClientID   string         `json:"clientId"`
	Token      string         `json:"token"`
	SessionID  string         `json:"sessionId"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone"`
	Transcript string         `json:"transcript"`
	Meta       TranscriptMeta `json:"meta"`
}

// ChatMessage is a role/content pair in the shape the chat backend expects.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body sent to the chat backend.
type ChatRequest struct {
	SessionID     string        `json:"sessionId"`
	ClientID      string        `json:"clientId"`
	Messages      []ChatMessage `json:"messages"`
	LatestMessage ChatMessage   `json:"latestMessage"`
	Meta          PageMeta      `json:"meta"`
}
