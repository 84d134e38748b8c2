package domain

import "time"

type BusinessStatus string

const (
	BusinessStatusActive   BusinessStatus = "active"
	BusinessStatusSetup    BusinessStatus = "setup"
	BusinessStatusInactive BusinessStatus = "inactive"
)

type BusinessType string

const (
	BusinessTypeEquipment BusinessType = "equipment"
	BusinessTypeParty     BusinessType = "party"
	BusinessTypeTool      BusinessType = "tool"
	BusinessTypeVehicle   BusinessType = "vehicle"
)

// Branding holds per-tenant portal theming. Stored as a JSONB column.
type Branding struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	LogoURL        string `json:"logo_url"`
	Tagline        string `json:"tagline"`
}

// Business is the tenant root. Every other entity is scoped by BusinessID.
type Business struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Type            BusinessType     `json:"type"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	Website         string           `json:"website"`
	Address         string           `json:"address"`
	Branding        Branding         `json:"branding"`
	TaxRateBps      int32            `json:"tax_rate_bps"` // basis points, 800 = 8%
	ReputationScore int32            `json:"reputation_score"`
	Status          BusinessStatus   `json:"status"`
	Intelligence    *WebIntelligence `json:"web_intelligence,omitempty"`
	CreatedOn       time.Time        `json:"created_on"`
	UpdatedOn       time.Time        `json:"updated_on"`
}

// BusinessStats is a per-tenant roll-up for the master admin panel.
type BusinessStats struct {
	Business       Business `json:"business"`
	EquipmentCount int32    `json:"equipment_count"`
	CustomerCount  int32    `json:"customer_count"`
	RentalCount    int32    `json:"rental_count"`
	OpenRentals    int32    `json:"open_rentals"`
	RevenueCents   int64    `json:"revenue_cents"`
}

// PlatformStats is the cross-tenant summary for the master admin panel.
type PlatformStats struct {
	BusinessCount     int32 `json:"business_count"`
	ActiveBusinesses  int32 `json:"active_businesses"`
	EquipmentCount    int32 `json:"equipment_count"`
	CustomerCount     int32 `json:"customer_count"`
	OpenRentals       int32 `json:"open_rentals"`
	TotalRevenueCents int64 `json:"total_revenue_cents"`
}
