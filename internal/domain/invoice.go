package domain

import "time"

type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
	InvoiceStatusVoid  InvoiceStatus = "void"
)

// InvoiceLine is one billed line. Stored as a JSONB array on the invoice.
type InvoiceLine struct {
	Description string `json:"description"`
	Quantity    int32  `json:"quantity"`
	UnitCents   int64  `json:"unit_cents"`
	AmountCents int64  `json:"amount_cents"`
}

type Invoice struct {
	ID            string        `json:"id"`
	BusinessID    string        `json:"business_id"`
	RentalID      string        `json:"rental_id"`
	CustomerID    string        `json:"customer_id"`
	Number        string        `json:"number"` // INV-<year>-<seq>, sequential per business
	IssueDate     string        `json:"issue_date"`
	DueDate       string        `json:"due_date"`
	Lines         []InvoiceLine `json:"lines"`
	SubtotalCents int64         `json:"subtotal_cents"`
	TaxCents      int64         `json:"tax_cents"`
	TotalCents    int64         `json:"total_cents"`
	Status        InvoiceStatus `json:"status"`
	CreatedOn     time.Time     `json:"created_on"`
	UpdatedOn     time.Time     `json:"updated_on"`
}
