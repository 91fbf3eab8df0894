// Package handler provides HTTP handlers for the relay service.
package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/anchor-corps/chat-relay/internal/downstream"
	"github.com/anchor-corps/chat-relay/internal/model"
	"github.com/anchor-corps/chat-relay/internal/transcript"
	"github.com/anchor-corps/chat-relay/pkg/logger"
	"github.com/anchor-corps/chat-relay/pkg/metrics"
)

// TokenHeader carries the shared token when it is not in the body.
const TokenHeader = "X-Relay-Token"

// ForwardHandler handles transcript and lead forwarding endpoints. Requests
// are independent of each other; the handler keeps no per-session state.
type ForwardHandler struct {
	expectedToken string
	forwarder     downstream.Forwarder
	logger        *logger.Logger
}

// NewForwardHandler creates a forward handler. An empty expectedToken
// disables the token check.
func NewForwardHandler(expectedToken string, fwd downstream.Forwarder, log *logger.Logger) *ForwardHandler {
	return &ForwardHandler{
		expectedToken: expectedToken,
		forwarder:     fwd,
		logger:        log,
	}
}

// Transcript handles POST /forward-transcript.
func (h *ForwardHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload model.TranscriptPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		metrics.TranscriptsForwarded.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if payload.Transcript.Messages == nil {
		metrics.TranscriptsForwarded.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if !h.tokenOK(r, payload.Token) {
		metrics.TranscriptsForwarded.WithLabelValues("unauthorized").Inc()
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	compiled := transcript.Compile(payload.Transcript)

	err := h.forwarder.ForwardTranscript(ctx, downstream.Delivery{
		SessionID:  payload.Transcript.SessionID,
		Page:       payload.Transcript.Meta.Page,
		Title:      payload.Transcript.Meta.Title,
		Transcript: compiled,
	})
	if err != nil {
		// Outcome only; transcript text stays out of logs.
		h.logger.Error("downstream transcript delivery failed",
			zap.String("session_id", payload.Transcript.SessionID),
			zap.Error(err),
		)
		metrics.TranscriptsForwarded.WithLabelValues("forward_failed").Inc()
		metrics.DownstreamFailures.WithLabelValues("transcript").Inc()
		writeError(w, http.StatusBadGateway, "forward failed")
		return
	}

	h.logger.Info("transcript forwarded",
		zap.String("session_id", payload.Transcript.SessionID),
		zap.Int("messages", len(payload.Transcript.Messages)),
	)
	metrics.TranscriptsForwarded.WithLabelValues("ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// Lead handles POST /forward-lead.
func (h *ForwardHandler) Lead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload model.LeadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		metrics.LeadsForwarded.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Phone == "" {
		metrics.LeadsForwarded.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if !h.tokenOK(r, payload.Token) {
		metrics.LeadsForwarded.WithLabelValues("unauthorized").Inc()
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	err := h.forwarder.ForwardLead(ctx, downstream.LeadDelivery{
		SessionID:  payload.SessionID,
		Name:       payload.Name,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Page:       payload.Meta.Page,
		Title:      payload.Meta.Title,
		Transcript: payload.Transcript,
	})
	if err != nil {
		h.logger.Error("downstream lead delivery failed",
			zap.String("session_id", payload.SessionID),
			zap.Error(err),
		)
		metrics.LeadsForwarded.WithLabelValues("forward_failed").Inc()
		metrics.DownstreamFailures.WithLabelValues("lead").Inc()
		writeError(w, http.StatusBadGateway, "forward failed")
		return
	}

	h.logger.Info("lead forwarded", zap.String("session_id", payload.SessionID))
	metrics.LeadsForwarded.WithLabelValues("ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// tokenOK checks the caller-supplied shared token. The widget sends it in
// the body; some deployments put it in a header or query parameter instead.
// This is shared-secret gating, not a cryptographic boundary.
func (h *ForwardHandler) tokenOK(r *http.Request, bodyToken string) bool {
	if h.expectedToken == "" {
		return true
	}
	if bodyToken == h.expectedToken {
		return true
	}
	if r.Header.Get(TokenHeader) == h.expectedToken {
		return true
	}
	return r.URL.Query().Get("token") == h.expectedToken
}
