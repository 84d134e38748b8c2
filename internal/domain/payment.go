package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment mirrors one gateway payment intent. Status follows the intent
// lifecycle reported by webhook events.
type Payment struct {
	ID            string        `json:"id"`
	BusinessID    string        `json:"business_id"`
	InvoiceID     string        `json:"invoice_id"`
	CustomerID    string        `json:"customer_id"`
	AmountCents   int64         `json:"amount_cents"`
	Currency      string        `json:"currency"`
	IntentID      string        `json:"intent_id"`
	Status        PaymentStatus `json:"status"`
	FailureReason string        `json:"failure_reason,omitempty"`
	CreatedOn     time.Time     `json:"created_on"`
	UpdatedOn     time.Time     `json:"updated_on"`
}
