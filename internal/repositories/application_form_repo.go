package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"bizboost/internal/models"

	"github.com/google/uuid"
)

type ApplicationFormRepository interface {
	Create(ctx context.Context, form *models.ApplicationForm) error
	GetActiveByProgramID(ctx context.Context, programID uuid.UUID) (*models.ApplicationForm, error)
	Deactivate(ctx context.Context, programID uuid.UUID) error
}

type applicationFormRepo struct {
	db DB
}

func NewApplicationFormRepo(db DB) ApplicationFormRepository {
	return &applicationFormRepo{db: db}
}

func (r *applicationFormRepo) Create(ctx context.Context, form *models.ApplicationForm) error {
	fields, err := json.Marshal(form.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode form fields: %w", err)
	}
	query := `
		INSERT INTO application_forms (id, program_id, fields, is_active, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err = r.db.Exec(ctx, query, form.ID, form.ProgramID, fields, form.IsActive)
	return err
}

func (r *applicationFormRepo) GetActiveByProgramID(ctx context.Context, programID uuid.UUID) (*models.ApplicationForm, error) {
	form := &models.ApplicationForm{}
	var fields []byte
	query := `
		SELECT id, program_id, fields, is_active, created_at
		FROM application_forms
		WHERE program_id = $1 AND is_active = true
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, programID).Scan(&form.ID, &form.ProgramID, &fields, &form.IsActive, &form.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fields, &form.Fields); err != nil {
		return nil, fmt.Errorf("failed to decode form fields: %w", err)
	}
	return form, nil
}

func (r *applicationFormRepo) Deactivate(ctx context.Context, programID uuid.UUID) error {
	query := `UPDATE application_forms SET is_active = false WHERE program_id = $1`
	_, err := r.db.Exec(ctx, query, programID)
	return err
}
