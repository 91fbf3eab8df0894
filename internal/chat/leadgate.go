package chat

import (
	"github.com/anchor-corps/chat-relay/internal/model"
)

// LeadGate decides when contact-detail capture is required. The prompt
// becomes visible the first time an assistant message lands after at least
// one user message, exactly once per session. Once visible it blocks new
// user submissions until the lead form is submitted or the session resets.
type LeadGate struct {
	hasUserMessage bool
	shown          bool
	submitted      bool
}

// NoteMessage observes a stored message and returns true when this message
// is the one that makes the prompt visible.
func (g *LeadGate) NoteMessage(role model.Role) bool {
	switch role {
	case model.RoleUser:
		g.hasUserMessage = true
	case model.RoleAssistant:
		if g.hasUserMessage && !g.shown {
			g.shown = true
			return true
		}
	}
	return false
}

// Visible reports whether the lead prompt has been shown this session.
func (g *LeadGate) Visible() bool {
	return g.shown
}

// Blocking reports whether new user submissions must be rejected.
func (g *LeadGate) Blocking() bool {
	return g.shown && !g.submitted
}

// Submitted reports whether the lead form was successfully submitted.
func (g *LeadGate) Submitted() bool {
	return g.submitted
}

// MarkSubmitted releases the gate after a successful lead submission.
func (g *LeadGate) MarkSubmitted() {
	g.submitted = true
}

// Reset clears all gate state; a new session starts ungated.
func (g *LeadGate) Reset() {
	g.hasUserMessage = false
	g.shown = false
	g.submitted = false
}
