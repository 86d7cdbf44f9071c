package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgramEnrollment exists once an application is approved. Tracks the
// participant's progress through the program.
type ProgramEnrollment struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	ProgramID            uuid.UUID `json:"program_id" db:"program_id"`
	ParticipantID        uuid.UUID `json:"participant_id" db:"participant_id"`
	ApplicationID        uuid.UUID `json:"application_id" db:"application_id"`
	CompletionPercentage int       `json:"completion_percentage" db:"completion_percentage"`
	EnrolledAt           time.Time `json:"enrolled_at" db:"enrolled_at"`
}
