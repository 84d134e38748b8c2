package domain

import "time"

type DeliveryKind string

const (
	DeliveryKindDelivery DeliveryKind = "delivery"
	DeliveryKindPickup   DeliveryKind = "pickup"
)

type DeliveryStatus string

const (
	DeliveryStatusScheduled DeliveryStatus = "scheduled"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusCompleted DeliveryStatus = "completed"
)

// ProofOfService holds the driver's capture at the doorstep. Stored as JSONB.
type ProofOfService struct {
	SignedBy   string     `json:"signed_by,omitempty"`
	SignedAt   *time.Time `json:"signed_at,omitempty"`
	PhotoURL   string     `json:"photo_url,omitempty"`
	DriverNote string     `json:"driver_note,omitempty"`
}

// DeliverySchedule is one scheduled delivery or pickup event for a rental.
type DeliverySchedule struct {
	ID            string         `json:"id"`
	BusinessID    string         `json:"business_id"`
	RentalID      string         `json:"rental_id"`
	Kind          DeliveryKind   `json:"kind"`
	ScheduledDate string         `json:"scheduled_date"`
	Address       string         `json:"address"`
	DriverName    string         `json:"driver_name"`
	Status        DeliveryStatus `json:"status"`
	Proof         ProofOfService `json:"proof"`
	CreatedOn     time.Time      `json:"created_on"`
	UpdatedOn     time.Time      `json:"updated_on"`
}
