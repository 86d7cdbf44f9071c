package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProgramStatusDraft     = "draft"
	ProgramStatusActive    = "active"
	ProgramStatusCompleted = "completed"
	ProgramStatusCancelled = "cancelled"
)

var ValidProgramStatuses = map[string]bool{
	ProgramStatusDraft:     true,
	ProgramStatusActive:    true,
	ProgramStatusCompleted: true,
	ProgramStatusCancelled: true,
}

// Program is an admin-defined cohort/offering applicants apply to or enroll
// in. ApplicationLinkID is the opaque token behind the public apply URL.
type Program struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	Name                string     `json:"name" db:"name"`
	Description         string     `json:"description" db:"description"`
	Status              string     `json:"status" db:"status"`
	StartDate           *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate             *time.Time `json:"end_date,omitempty" db:"end_date"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty" db:"application_deadline"`
	Capacity            int        `json:"capacity" db:"capacity"`
	ApplicationLinkID   *string    `json:"application_link_id,omitempty" db:"application_link_id"`
	CreatedBy           uuid.UUID  `json:"created_by" db:"created_by"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// ProgramStats carries the per-program counts shown on the dashboard.
type ProgramStats struct {
	ProgramID        uuid.UUID `json:"program_id"`
	ApplicationCount int       `json:"applications_count"`
	EnrollmentCount  int       `json:"enrollments_count"`
	EventCount       int       `json:"events_count"`
	MaterialCount    int       `json:"materials_count"`
}
