package domain

import "time"

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "available"
	EquipmentStatusRented      EquipmentStatus = "rented"
	EquipmentStatusMaintenance EquipmentStatus = "maintenance"
	EquipmentStatusInactive    EquipmentStatus = "inactive"
)

type EquipmentCondition string

const (
	EquipmentConditionExcellent EquipmentCondition = "excellent"
	EquipmentConditionGood      EquipmentCondition = "good"
	EquipmentConditionFair      EquipmentCondition = "fair"
	EquipmentConditionPoor      EquipmentCondition = "poor"
)

// Specification is one labeled attribute of an equipment item
// (e.g. "Weight" / "250 lbs"). Stored as a JSONB array.
type Specification struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Equipment struct {
	ID               string             `json:"id"`
	BusinessID       string             `json:"business_id"`
	Name             string             `json:"name"`
	Category         string             `json:"category"`
	Description      string             `json:"description"`
	DailyRateCents   int64              `json:"daily_rate_cents"`
	WeeklyRateCents  int64              `json:"weekly_rate_cents"`
	MonthlyRateCents int64              `json:"monthly_rate_cents"`
	Status           EquipmentStatus    `json:"status"`
	Condition        EquipmentCondition `json:"condition"`
	Specifications   []Specification    `json:"specifications"`
	CreatedOn        time.Time          `json:"created_on"`
	UpdatedOn        time.Time          `json:"updated_on"`
}
