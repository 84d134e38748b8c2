package http

import (
	"net/http"
	"time"
)

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// AdminBusinessStats returns per-tenant roll-ups for the master admin panel.
func (h *Handler) AdminBusinessStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.ListBusinessStats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) AdminPlatformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.PlatformStats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
