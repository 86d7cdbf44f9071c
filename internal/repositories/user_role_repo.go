package repositories

import (
	"context"

	"bizboost/internal/models"

	"github.com/google/uuid"
)

type UserRoleRepository interface {
	Create(ctx context.Context, userRole *models.UserRole) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.UserRole, error)
	Delete(ctx context.Context, userID uuid.UUID, role string) error
}

type userRoleRepo struct {
	db DB
}

func NewUserRoleRepo(db DB) UserRoleRepository {
	return &userRoleRepo{db: db}
}

func (r *userRoleRepo) Create(ctx context.Context, userRole *models.UserRole) error {
	query := `
		INSERT INTO user_roles (id, user_id, role, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, role) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userRole.ID, userRole.UserID, userRole.Role)
	return err
}

func (r *userRoleRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.UserRole, error) {
	query := `
		SELECT id, user_id, role, created_at
		FROM user_roles
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.UserRole
	for rows.Next() {
		role := &models.UserRole{}
		if err := rows.Scan(&role.ID, &role.UserID, &role.Role, &role.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *userRoleRepo) Delete(ctx context.Context, userID uuid.UUID, role string) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role = $2`
	_, err := r.db.Exec(ctx, query, userID, role)
	return err
}
