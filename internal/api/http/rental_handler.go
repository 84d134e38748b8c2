package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/service"
)

func (h *Handler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var req service.RentalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	rental, err := h.rentals.Create(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rental)
}

// QuoteRental prices a prospective booking from query parameters without
// reserving anything.
func (h *Handler) QuoteRental(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	deliveryFee, _ := strconv.ParseInt(q.Get("delivery_fee_cents"), 10, 64)
	pickupFee, _ := strconv.ParseInt(q.Get("pickup_fee_cents"), 10, 64)

	quote, err := h.rentals.Quote(r.Context(), service.RentalRequest{
		EquipmentID:      q.Get("equipment_id"),
		StartDate:        q.Get("start_date"),
		EndDate:          q.Get("end_date"),
		DeliveryFeeCents: deliveryFee,
		PickupFeeCents:   pickupFee,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

func (h *Handler) GetRental(w http.ResponseWriter, r *http.Request) {
	rental, err := h.rentals.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *Handler) ListRentals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := pageParams(r)
	items, total, err := h.rentals.List(r.Context(), q.Get("business_id"), q.Get("status"), page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, paged{Items: items, Total: total})
}

func (h *Handler) ChangeRentalStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.RentalStatus `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, r, err)
		return
	}
	rental, err := h.rentals.ChangeStatus(r.Context(), mux.Vars(r)["id"], body.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *Handler) ListRentalDeliveries(w http.ResponseWriter, r *http.Request) {
	deliveries, err := h.deliveries.ListByRental(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deliveries)
}
