package handlers

import (
	"context"
	"eld-trip-service/internal/platform/logging"
	"eld-trip-service/internal/ports"
	"net/http"
	"time"
)

// HealthHandler reports liveness together with database connectivity.
type HealthHandler struct {
	Repo ports.TripRepository
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.Repo.Ping(ctx); err != nil {
		logging.LogError(logging.FromContext(ctx), "health check failed", err)
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{
			"status":   "error",
			"database": "disconnected",
		})
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "connected",
	})
}
