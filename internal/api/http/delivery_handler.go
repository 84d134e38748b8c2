package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/service"
)

func (h *Handler) ScheduleDelivery(w http.ResponseWriter, r *http.Request) {
	var d domain.DeliverySchedule
	if err := decodeJSON(r, &d); err != nil {
		respondError(w, r, err)
		return
	}
	created, err := h.deliveries.Schedule(r.Context(), &d)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetDelivery(w http.ResponseWriter, r *http.Request) {
	d, err := h.deliveries.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// ListDeliveries returns a business's schedule, optionally narrowed to one
// day with ?date=.
func (h *Handler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.deliveries.ListByBusiness(r.Context(), q.Get("business_id"), q.Get("date"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) UpdateDelivery(w http.ResponseWriter, r *http.Request) {
	var patch service.DeliveryPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}
	d, err := h.deliveries.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}
