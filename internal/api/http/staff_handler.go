package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
)

func (h *Handler) AddStaff(w http.ResponseWriter, r *http.Request) {
	var m domain.Staff
	if err := decodeJSON(r, &m); err != nil {
		respondError(w, r, err)
		return
	}
	created, err := h.staff.Add(r.Context(), &m)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	m, err := h.staff.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	items, err := h.staff.List(r.Context(), r.URL.Query().Get("business_id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) RemoveStaff(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.staff.Remove(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
