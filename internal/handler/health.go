package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, map[string]string{"status": status})
}
