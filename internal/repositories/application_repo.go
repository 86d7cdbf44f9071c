package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bizboost/internal/models"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *models.ProgramApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramApplication, error)
	List(ctx context.Context, limit, offset int) ([]*models.ProgramApplication, error)
	ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramApplication, error)
	ListByApplicantID(ctx context.Context, applicantID uuid.UUID) ([]*models.ProgramApplication, error)
	ListSubmittedBetween(ctx context.Context, start, end time.Time) ([]*models.ProgramApplication, error)
	CountByProgramID(ctx context.Context, programID uuid.UUID) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, reviewerID uuid.UUID, notes *string) error
}

type applicationRepo struct {
	db DB
}

func NewApplicationRepo(db DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `id, program_id, applicant_id, business_id, application_data, status,
		submitted_at, reviewed_at, reviewed_by, notes`

func scanApplication(row interface{ Scan(dest ...any) error }) (*models.ProgramApplication, error) {
	app := &models.ProgramApplication{}
	var data []byte
	err := row.Scan(&app.ID, &app.ProgramID, &app.ApplicantID, &app.BusinessID, &data,
		&app.Status, &app.SubmittedAt, &app.ReviewedAt, &app.ReviewedBy, &app.Notes)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &app.ApplicationData); err != nil {
			return nil, fmt.Errorf("failed to decode application data: %w", err)
		}
	}
	return app, nil
}

func (r *applicationRepo) Create(ctx context.Context, app *models.ProgramApplication) error {
	data, err := json.Marshal(app.ApplicationData)
	if err != nil {
		return fmt.Errorf("failed to encode application data: %w", err)
	}
	query := `
		INSERT INTO program_applications (id, program_id, applicant_id, business_id, application_data, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err = r.db.Exec(ctx, query, app.ID, app.ProgramID, app.ApplicantID, app.BusinessID, data, app.Status)
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM program_applications WHERE id = $1`
	return scanApplication(r.db.QueryRow(ctx, query, id))
}

func (r *applicationRepo) list(ctx context.Context, query string, args ...any) ([]*models.ProgramApplication, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []*models.ProgramApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

func (r *applicationRepo) List(ctx context.Context, limit, offset int) ([]*models.ProgramApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM program_applications ORDER BY submitted_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *applicationRepo) ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM program_applications WHERE program_id = $1 ORDER BY submitted_at DESC`
	return r.list(ctx, query, programID)
}

func (r *applicationRepo) ListByApplicantID(ctx context.Context, applicantID uuid.UUID) ([]*models.ProgramApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM program_applications WHERE applicant_id = $1 ORDER BY submitted_at DESC`
	return r.list(ctx, query, applicantID)
}

func (r *applicationRepo) ListSubmittedBetween(ctx context.Context, start, end time.Time) ([]*models.ProgramApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM program_applications
		WHERE submitted_at >= $1 AND submitted_at < $2 ORDER BY submitted_at`
	return r.list(ctx, query, start, end)
}

func (r *applicationRepo) CountByProgramID(ctx context.Context, programID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM program_applications WHERE program_id = $1`
	err := r.db.QueryRow(ctx, query, programID).Scan(&count)
	return count, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, reviewerID uuid.UUID, notes *string) error {
	query := `
		UPDATE program_applications
		SET status = $1, reviewed_by = $2, notes = $3, reviewed_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, status, reviewerID, notes, id)
	return err
}
