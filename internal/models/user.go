package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the account identity behind every authenticated principal.
// One row per profile; never hard-deleted through the API.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	FullName     string    `json:"full_name" db:"full_name"`
	MobileNumber string    `json:"mobile_number" db:"mobile_number"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
