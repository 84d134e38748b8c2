package domain

import "time"

type Customer struct {
	ID               string    `json:"id"`
	BusinessID       string    `json:"business_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	CreditLimitCents int64     `json:"credit_limit_cents"`
	PaymentTerms     string    `json:"payment_terms"` // e.g. "net_15", "net_30", "due_on_receipt"
	Notes            string    `json:"notes"`
	CreatedOn        time.Time `json:"created_on"`
	UpdatedOn        time.Time `json:"updated_on"`
}
