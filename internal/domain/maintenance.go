package domain

import "time"

// MaintenanceRecord tracks a service event on an equipment item. An open
// record keeps the equipment out of the rentable pool.
type MaintenanceRecord struct {
	ID          string     `json:"id"`
	BusinessID  string     `json:"business_id"`
	EquipmentID string     `json:"equipment_id"`
	Description string     `json:"description"`
	CostCents   int64      `json:"cost_cents"`
	StartedOn   string     `json:"started_on"` // yyyy-mm-dd
	ClosedOn    *time.Time `json:"closed_on,omitempty"`
	CreatedOn   time.Time  `json:"created_on"`
}
