package downstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Webhook forwards deliveries to a CRM webhook over HTTP.
type Webhook struct {
	url    string
	apiKey string
	client *http.Client
}

// NewWebhook creates a webhook forwarder. A nil httpClient falls back to a
// default with a timeout.
func NewWebhook(url, apiKey string, httpClient *http.Client) *Webhook {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Webhook{
		url:    url,
		apiKey: apiKey,
		client: httpClient,
	}
}

func (w *Webhook) ForwardTranscript(ctx context.Context, d Delivery) error {
	return w.post(ctx, d)
}

func (w *Webhook) ForwardLead(ctx context.Context, d LeadDelivery) error {
	return w.post(ctx, d)
}

// Ready reports whether the webhook is configured. Reachability is only
// known at delivery time.
func (w *Webhook) Ready() bool {
	return w.url != ""
}

func (w *Webhook) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.apiKey != "" {
		req.Header.Set("Authorization", "Token "+w.apiKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
