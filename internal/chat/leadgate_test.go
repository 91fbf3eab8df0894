package chat

import (
	"testing"

	"github.com/anchor-corps/chat-relay/internal/model"
)

func TestLeadGateShowsAfterFirstExchange(t *testing.T) {
	var g LeadGate

	// Assistant-only traffic (e.g. the intro) never shows the prompt.
	if g.NoteMessage(model.RoleAssistant) {
		t.Error("gate triggered before any user message")
	}
	if g.Visible() {
		t.Error("gate visible before any user message")
	}

	g.NoteMessage(model.RoleUser)
	if g.Visible() {
		t.Error("gate visible before assistant reply")
	}

	if !g.NoteMessage(model.RoleAssistant) {
		t.Error("expected gate to trigger on first user->assistant exchange")
	}
	if !g.Visible() || !g.Blocking() {
		t.Error("expected gate visible and blocking")
	}
}

func TestLeadGateTriggersExactlyOnce(t *testing.T) {
	var g LeadGate
	g.NoteMessage(model.RoleUser)
	g.NoteMessage(model.RoleAssistant)

	if g.NoteMessage(model.RoleAssistant) {
		t.Error("gate retriggered on repeated assistant reply")
	}
	g.NoteMessage(model.RoleUser)
	if g.NoteMessage(model.RoleAssistant) {
		t.Error("gate retriggered on later exchange")
	}
}

func TestLeadGateReleasedBySubmission(t *testing.T) {
	var g LeadGate
	g.NoteMessage(model.RoleUser)
	g.NoteMessage(model.RoleAssistant)

	g.MarkSubmitted()
	if g.Blocking() {
		t.Error("gate still blocking after submission")
	}
	if !g.Visible() {
		t.Error("visibility history lost on submission")
	}
}

func TestLeadGateResetStartsUngated(t *testing.T) {
	var g LeadGate
	g.NoteMessage(model.RoleUser)
	g.NoteMessage(model.RoleAssistant)
	g.MarkSubmitted()

	g.Reset()
	if g.Visible() || g.Blocking() || g.Submitted() {
		t.Error("expected clean gate after reset")
	}
	// The full exchange is required again.
	if g.NoteMessage(model.RoleAssistant) {
		t.Error("gate triggered without a user message after reset")
	}
}
