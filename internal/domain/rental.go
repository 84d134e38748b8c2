package domain

import "time"

type RentalStatus string

const (
	RentalStatusReserved  RentalStatus = "reserved"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// IsOpen reports whether the rental still holds its equipment and date range.
func (s RentalStatus) IsOpen() bool {
	return s == RentalStatusReserved || s == RentalStatusActive
}

// Rental books one equipment item for one customer over a date range.
// Dates are yyyy-mm-dd strings; the range is inclusive on both ends for
// conflict purposes. Rate fields are snapshots taken at creation time, so
// later equipment price changes never reprice an existing booking.
type Rental struct {
	ID               string       `json:"id"`
	BusinessID       string       `json:"business_id"`
	EquipmentID      string       `json:"equipment_id"`
	CustomerID       string       `json:"customer_id"`
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	TotalDays        int32        `json:"total_days"`
	DailyRateCents   int64        `json:"daily_rate_cents"`
	WeeklyRateCents  int64        `json:"weekly_rate_cents"`
	MonthlyRateCents int64        `json:"monthly_rate_cents"`
	SubtotalCents    int64        `json:"subtotal_cents"`
	TaxCents         int64        `json:"tax_cents"`
	DeliveryFeeCents int64        `json:"delivery_fee_cents"`
	PickupFeeCents   int64        `json:"pickup_fee_cents"`
	TotalCents       int64        `json:"total_cents"`
	Status           RentalStatus `json:"status"`
	Notes            string       `json:"notes"`
	CreatedOn        time.Time    `json:"created_on"`
	UpdatedOn        time.Time    `json:"updated_on"`
}

// RentalQuote is the priced breakdown for a prospective booking.
type RentalQuote struct {
	EquipmentID      string `json:"equipment_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	TotalDays        int32  `json:"total_days"`
	Months           int32  `json:"months"`
	Weeks            int32  `json:"weeks"`
	Days             int32  `json:"days"`
	SubtotalCents    int64  `json:"subtotal_cents"`
	TaxCents         int64  `json:"tax_cents"`
	DeliveryFeeCents int64  `json:"delivery_fee_cents"`
	PickupFeeCents   int64  `json:"pickup_fee_cents"`
	TotalCents       int64  `json:"total_cents"`
}

// Availability reports whether a date range is bookable for an equipment item.
type Availability struct {
	EquipmentID string   `json:"equipment_id"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Available   bool     `json:"available"`
	Conflicts   []Rental `json:"conflicts,omitempty"`
}
