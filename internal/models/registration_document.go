package models

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationDocument is file metadata linked 1:N to a BusinessRegistration.
// The file itself lives in object storage under FileURL.
type RegistrationDocument struct {
	ID             uuid.UUID `json:"id" db:"id"`
	RegistrationID uuid.UUID `json:"registration_id" db:"registration_id"`
	DocumentType   string    `json:"document_type" db:"document_type"`
	FileName       string    `json:"file_name" db:"file_name"`
	FileURL        string    `json:"file_url" db:"file_url"`
	UploadedAt     time.Time `json:"uploaded_at" db:"uploaded_at"`
}
