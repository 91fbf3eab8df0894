package handler

import (
	"net/http"

	"github.com/anchor-corps/chat-relay/internal/downstream"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	forwarder downstream.Forwarder
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(fwd downstream.Forwarder) *HealthHandler {
	return &HealthHandler{
		forwarder: fwd,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.forwarder == nil || !h.forwarder.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "downstream not available",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
