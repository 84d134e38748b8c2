package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RentalID string `json:"rental_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, r, err)
		return
	}
	inv, err := h.invoices.CreateFromRental(r.Context(), body.RentalID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, inv)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := pageParams(r)
	items, total, err := h.invoices.List(r.Context(), q.Get("business_id"), q.Get("status"), page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, paged{Items: items, Total: total})
}

func (h *Handler) SendInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.Send(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

func (h *Handler) VoidInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.Void(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

func (h *Handler) ListInvoicePayments(w http.ResponseWriter, r *http.Request) {
	items, err := h.payments.ListByInvoice(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}
