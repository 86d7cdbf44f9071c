package models

import (
	"time"

	"github.com/google/uuid"
)

// Registration statuses. Transitions are expected to follow
// pending -> {under_review, requires_documents} -> {approved, rejected},
// but the API does not guard the machine: any admin action may set any
// status at any time, matching the review screens' behavior.
const (
	RegistrationStatusPending           = "pending"
	RegistrationStatusUnderReview       = "under_review"
	RegistrationStatusApproved          = "approved"
	RegistrationStatusRejected          = "rejected"
	RegistrationStatusRequiresDocuments = "requires_documents"
)

// ValidRegistrationStatuses enumerates every accepted registration status.
var ValidRegistrationStatuses = map[string]bool{
	RegistrationStatusPending:           true,
	RegistrationStatusUnderReview:       true,
	RegistrationStatusApproved:          true,
	RegistrationStatusRejected:          true,
	RegistrationStatusRequiresDocuments: true,
}

// BusinessRegistration is the standalone record produced by completing the
// registration wizard, distinct from Business. Applicant contact info and
// business descriptive fields are duplicated by design.
type BusinessRegistration struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	ReferenceNumber   string     `json:"reference_number" db:"reference_number"`
	FullName          string     `json:"full_name" db:"full_name"`
	Email             string     `json:"email" db:"email"`
	MobileNumber      string     `json:"mobile_number" db:"mobile_number"`
	BusinessName      string     `json:"business_name" db:"business_name"`
	BusinessCategory  string     `json:"business_category" db:"business_category"`
	BusinessLocation  string     `json:"business_location" db:"business_location"`
	BusinessType      string     `json:"business_type" db:"business_type"`
	NumberOfEmployees string     `json:"number_of_employees" db:"number_of_employees"`
	MonthlyRevenue    string     `json:"monthly_revenue" db:"monthly_revenue"`
	YearsInOperation  int        `json:"years_in_operation" db:"years_in_operation"`
	BEEELevel         string     `json:"beee_level" db:"beee_level"`
	SelectedServices  []string   `json:"selected_services" db:"selected_services"`
	Description       string     `json:"description" db:"description"`
	Status            string     `json:"status" db:"status"`
	ReviewedBy        *uuid.UUID `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewNotes       *string    `json:"review_notes,omitempty" db:"review_notes"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty" db:"reviewed_at"`
	SubmittedAt       time.Time  `json:"submitted_at" db:"submitted_at"`

	// Documents is populated by list queries that join registration_documents.
	Documents []*RegistrationDocument `json:"documents,omitempty" db:"-"`
}
