package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/service"
)

func (h *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var b domain.Business
	if err := decodeJSON(r, &b); err != nil {
		respondError(w, r, err)
		return
	}
	created, err := h.businesses.Create(r.Context(), &b)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	b, err := h.businesses.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (h *Handler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.businesses.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, businesses)
}

func (h *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	var patch service.BusinessPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}
	b, err := h.businesses.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (h *Handler) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	if err := h.businesses.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": mux.Vars(r)["id"]})
}

// AnalyzeBusiness triggers the web-intelligence run for one business.
func (h *Handler) AnalyzeBusiness(w http.ResponseWriter, r *http.Request) {
	b, err := h.businesses.Analyze(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}
