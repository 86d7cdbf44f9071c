package services

import (
	"context"

	"bizboost/internal/models"
	"bizboost/internal/repositories"

	"github.com/google/uuid"
)

// RBACService answers role questions for the route guards. The email
// heuristic in the session service is a UI hint only; these checks against
// the user_roles table are the real authorization boundary.
type RBACService interface {
	UserHasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
	UserHasAnyAdminRole(ctx context.Context, userID uuid.UUID) (bool, error)
	RolesForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role string) error
	RemoveRole(ctx context.Context, userID uuid.UUID, role string) error
}

type rbacService struct {
	userRoleRepo repositories.UserRoleRepository
}

func NewRBACService(userRoleRepo repositories.UserRoleRepository) RBACService {
	return &rbacService{userRoleRepo: userRoleRepo}
}

func (s *rbacService) RolesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := s.userRoleRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	roles := make([]string, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, row.Role)
	}
	return roles, nil
}

func (s *rbacService) UserHasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	roles, err := s.RolesForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func (s *rbacService) UserHasAnyAdminRole(ctx context.Context, userID uuid.UUID) (bool, error) {
	roles, err := s.RolesForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if models.AdminRoles[r] {
			return true, nil
		}
	}
	return false, nil
}

func (s *rbacService) AssignRole(ctx context.Context, userID uuid.UUID, role string) error {
	return s.userRoleRepo.Create(ctx, &models.UserRole{
		ID:     uuid.New(),
		UserID: userID,
		Role:   role,
	})
}

func (s *rbacService) RemoveRole(ctx context.Context, userID uuid.UUID, role string) error {
	return s.userRoleRepo.Delete(ctx, userID, role)
}
