package models

import (
	"time"

	"github.com/google/uuid"
)

// Role tags form a closed set. A profile may hold several of them.
const (
	RoleParticipant    = "participant"
	RoleAdmin          = "admin"
	RoleClientAdmin    = "client_admin"
	RoleProgramManager = "program_manager"
	RoleSuperAdmin     = "super_admin"
)

// AdminRoles are the tags that grant access to the admin dashboard routes.
var AdminRoles = map[string]bool{
	RoleAdmin:          true,
	RoleClientAdmin:    true,
	RoleProgramManager: true,
	RoleSuperAdmin:     true,
}

// ValidRoles enumerates every assignable role tag.
var ValidRoles = map[string]bool{
	RoleParticipant:    true,
	RoleAdmin:          true,
	RoleClientAdmin:    true,
	RoleProgramManager: true,
	RoleSuperAdmin:     true,
}

type UserRole struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
