package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgramEvent is scheduling metadata under a program, read-only for
// participants.
type ProgramEvent struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProgramID   uuid.UUID `json:"program_id" db:"program_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	EventDate   time.Time `json:"event_date" db:"event_date"`
	Location    string    `json:"location" db:"location"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
