// Package http exposes the REST API. Every response uses the same
// envelope: {"success": true, "data": ...} or {"success": false,
// "error": "..."}.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/service"
)

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrConflict):
		// Conflicts (overlap, duplicate email, guarded deletes) surface as
		// plain bad requests.
		status = http.StatusBadRequest
		message = err.Error()
	default:
		logger.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(envelope{Success: false, Error: message}); encErr != nil {
		logger.Error("Failed to encode error response", "error", encErr)
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body", service.ErrValidation)
	}
	return nil
}

// paged wraps list results with their total count.
type paged struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
}
