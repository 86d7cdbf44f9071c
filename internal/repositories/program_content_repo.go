package repositories

import (
	"context"

	"bizboost/internal/models"

	"github.com/google/uuid"
)

// ProgramEventRepository and ProgramMaterialRepository back the read-only
// participant views and the admin content management screens.

type ProgramEventRepository interface {
	Create(ctx context.Context, event *models.ProgramEvent) error
	ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramEvent, error)
	CountByProgramID(ctx context.Context, programID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type programEventRepo struct {
	db DB
}

func NewProgramEventRepo(db DB) ProgramEventRepository {
	return &programEventRepo{db: db}
}

func (r *programEventRepo) Create(ctx context.Context, event *models.ProgramEvent) error {
	query := `
		INSERT INTO program_events (id, program_id, title, description, event_date, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, event.ID, event.ProgramID, event.Title, event.Description, event.EventDate, event.Location)
	return err
}

func (r *programEventRepo) ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramEvent, error) {
	query := `
		SELECT id, program_id, title, description, event_date, location, created_at
		FROM program_events
		WHERE program_id = $1
		ORDER BY event_date
	`
	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.ProgramEvent
	for rows.Next() {
		e := &models.ProgramEvent{}
		if err := rows.Scan(&e.ID, &e.ProgramID, &e.Title, &e.Description, &e.EventDate, &e.Location, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *programEventRepo) CountByProgramID(ctx context.Context, programID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM program_events WHERE program_id = $1`, programID).Scan(&count)
	return count, err
}

func (r *programEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM program_events WHERE id = $1`, id)
	return err
}

type ProgramMaterialRepository interface {
	Create(ctx context.Context, material *models.ProgramMaterial) error
	ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramMaterial, error)
	CountByProgramID(ctx context.Context, programID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type programMaterialRepo struct {
	db DB
}

func NewProgramMaterialRepo(db DB) ProgramMaterialRepository {
	return &programMaterialRepo{db: db}
}

func (r *programMaterialRepo) Create(ctx context.Context, material *models.ProgramMaterial) error {
	query := `
		INSERT INTO program_materials (id, program_id, title, material_type, file_url, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, material.ID, material.ProgramID, material.Title, material.MaterialType, material.FileURL)
	return err
}

func (r *programMaterialRepo) ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramMaterial, error) {
	query := `
		SELECT id, program_id, title, material_type, file_url, created_at
		FROM program_materials
		WHERE program_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []*models.ProgramMaterial
	for rows.Next() {
		m := &models.ProgramMaterial{}
		if err := rows.Scan(&m.ID, &m.ProgramID, &m.Title, &m.MaterialType, &m.FileURL, &m.CreatedAt); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (r *programMaterialRepo) CountByProgramID(ctx context.Context, programID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM program_materials WHERE program_id = $1`, programID).Scan(&count)
	return count, err
}

func (r *programMaterialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM program_materials WHERE id = $1`, id)
	return err
}
