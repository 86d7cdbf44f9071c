package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationStatusDraft       = "draft"
	ApplicationStatusSubmitted   = "submitted"
	ApplicationStatusUnderReview = "under_review"
	ApplicationStatusApproved    = "approved"
	ApplicationStatusRejected    = "rejected"
)

var ValidApplicationStatuses = map[string]bool{
	ApplicationStatusDraft:       true,
	ApplicationStatusSubmitted:   true,
	ApplicationStatusUnderReview: true,
	ApplicationStatusApproved:    true,
	ApplicationStatusRejected:    true,
}

// ProgramApplication links an applicant and business to a Program, carrying
// the captured field values from the public form. Approval creates a
// ProgramEnrollment through the application service's approve operation.
type ProgramApplication struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	ProgramID       uuid.UUID      `json:"program_id" db:"program_id"`
	ApplicantID     uuid.UUID      `json:"applicant_id" db:"applicant_id"`
	BusinessID      uuid.UUID      `json:"business_id" db:"business_id"`
	ApplicationData map[string]any `json:"application_data" db:"application_data"`
	Status          string         `json:"status" db:"status"`
	SubmittedAt     time.Time      `json:"submitted_at" db:"submitted_at"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewedBy      *uuid.UUID     `json:"reviewed_by,omitempty" db:"reviewed_by"`
	Notes           *string        `json:"notes,omitempty" db:"notes"`
}
