package domain

import "time"

type StaffRole string

const (
	StaffRoleAdmin   StaffRole = "admin"
	StaffRoleManager StaffRole = "manager"
	StaffRoleDriver  StaffRole = "driver"
)

type Staff struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       StaffRole `json:"role"`
	CreatedOn  time.Time `json:"created_on"`
}
