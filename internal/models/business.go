package models

import (
	"time"

	"github.com/google/uuid"
)

// Business is owned by exactly one profile. Created during wizard submission
// or a public application; descriptive fields only, no client-side FK checks.
type Business struct {
	ID                uuid.UUID `json:"id" db:"id"`
	OwnerID           uuid.UUID `json:"owner_id" db:"owner_id"`
	BusinessName      string    `json:"business_name" db:"business_name"`
	BusinessCategory  string    `json:"business_category" db:"business_category"`
	BusinessLocation  string    `json:"business_location" db:"business_location"`
	BusinessType      string    `json:"business_type" db:"business_type"`
	NumberOfEmployees string    `json:"number_of_employees" db:"number_of_employees"`
	MonthlyRevenue    string    `json:"monthly_revenue" db:"monthly_revenue"`
	YearsInOperation  int       `json:"years_in_operation" db:"years_in_operation"`
	BEEELevel         string    `json:"beee_level" db:"beee_level"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}
