package downstream

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher is the subset of the NATS client used for delivery.
type Publisher interface {
	Publish(subject string, data []byte) error
	IsConnected() bool
}

// NATS publishes deliveries to subjects on a message bus, for deployments
// where the CRM integration consumes events instead of webhooks.
type NATS struct {
	pub         Publisher
	subject     string
	leadSubject string
}

// NewNATS creates a NATS forwarder publishing transcripts and leads to the
// given subjects.
func NewNATS(pub Publisher, subject, leadSubject string) *NATS {
	return &NATS{
		pub:         pub,
		subject:     subject,
		leadSubject: leadSubject,
	}
}

func (n *NATS) ForwardTranscript(_ context.Context, d Delivery) error {
	return n.publish(n.subject, d)
}

func (n *NATS) ForwardLead(_ context.Context, d LeadDelivery) error {
	return n.publish(n.leadSubject, d)
}

func (n *NATS) Ready() bool {
	return n.pub.IsConnected()
}

func (n *NATS) publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery: %w", err)
	}
	if err := n.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}
