package http

import (
	"fmt"
	"net/http"

	"rentalops-backend/internal/importer"
	"rentalops-backend/internal/service"
)

// RunImport ingests a CSV (inline or by URL) into equipment or customers.
// A partial import still returns 200; per-row failures ride along in the
// result.
func (h *Handler) RunImport(w http.ResponseWriter, r *http.Request) {
	var req importer.Request
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	result, err := h.importer.Run(r.Context(), req)
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}
	respondJSON(w, http.StatusOK, result)
}
