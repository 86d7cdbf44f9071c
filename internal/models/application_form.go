package models

import (
	"time"

	"github.com/google/uuid"
)

// Form field types the public renderer understands. Unknown types are
// skipped silently, both when rendering and when validating a submission.
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeTel      = "tel"
	FieldTypeTextarea = "textarea"
	FieldTypeSelect   = "select"
	FieldTypeFile     = "file"
)

// FormField is one entry of the stored JSON field-list schema. The Type
// discriminant drives an exhaustive dispatch in the form service.
type FormField struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
}

// ApplicationForm holds the one active field schema per program consumed by
// the public application form.
type ApplicationForm struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	ProgramID uuid.UUID   `json:"program_id" db:"program_id"`
	Fields    []FormField `json:"fields" db:"fields"`
	IsActive  bool        `json:"is_active" db:"is_active"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
