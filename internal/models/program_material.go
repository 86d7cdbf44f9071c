package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgramMaterial is content metadata under a program, read-only for
// participants.
type ProgramMaterial struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ProgramID    uuid.UUID `json:"program_id" db:"program_id"`
	Title        string    `json:"title" db:"title"`
	MaterialType string    `json:"material_type" db:"material_type"`
	FileURL      string    `json:"file_url" db:"file_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
