package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
)

func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		InvoiceID string `json:"invoice_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, r, err)
		return
	}
	payment, clientSecret, err := h.payments.CreateIntent(r.Context(), body.InvoiceID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, struct {
		Payment      *domain.Payment `json:"payment"`
		ClientSecret string          `json:"client_secret"`
	}{payment, clientSecret})
}

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.payments.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	items, total, err := h.payments.List(r.Context(), r.URL.Query().Get("business_id"), page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, paged{Items: items, Total: total})
}

// PaymentWebhook receives gateway events. The body is read raw; the
// payment service owns decoding so signature checks can slot in front of
// it later.
func (h *Handler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.payments.HandleWebhook(r.Context(), body); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"received": "ok"})
}
