package chat

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when submitted text trims to nothing.
	ErrEmptyInput = errors.New("empty input")

	// ErrBusy is returned when a submit overlaps an in-flight send. The
	// duplicate is dropped, never queued.
	ErrBusy = errors.New("send already in progress")

	// ErrLeadRequired is returned while the lead gate is blocking submission.
	ErrLeadRequired = errors.New("contact details required to continue")

	// ErrIncompleteLead is returned when the lead form is missing a field.
	ErrIncompleteLead = errors.New("name, email, and phone are all required")

	// ErrEmptyReply is returned when the extractor finds no reply content.
	ErrEmptyReply = errors.New("empty reply from chat backend")

	// ErrOffline is returned when no chat backend URL is configured.
	ErrOffline = errors.New("chat backend not configured")

	// ErrNoMessages is returned by EndChat on a session with nothing stored.
	ErrNoMessages = errors.New("no messages to send yet")
)

// BackendError reports a non-success HTTP status from the chat backend.
type BackendError struct {
	Status int
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("chat backend error (%d)", e.Status)
}
