package repositories

import (
	"context"

	"bizboost/internal/models"

	"github.com/google/uuid"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.ProgramEnrollment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramEnrollment, error)
	ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramEnrollment, error)
	ListByParticipantID(ctx context.Context, participantID uuid.UUID) ([]*models.ProgramEnrollment, error)
	CountByProgramID(ctx context.Context, programID uuid.UUID) (int, error)
	UpdateCompletion(ctx context.Context, id uuid.UUID, completionPercentage int) error
}

type enrollmentRepo struct {
	db DB
}

func NewEnrollmentRepo(db DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

const enrollmentColumns = `id, program_id, participant_id, application_id, completion_percentage, enrolled_at`

func scanEnrollment(row interface{ Scan(dest ...any) error }) (*models.ProgramEnrollment, error) {
	e := &models.ProgramEnrollment{}
	err := row.Scan(&e.ID, &e.ProgramID, &e.ParticipantID, &e.ApplicationID, &e.CompletionPercentage, &e.EnrolledAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *models.ProgramEnrollment) error {
	query := `
		INSERT INTO program_enrollments (id, program_id, participant_id, application_id, completion_percentage, enrolled_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query,
		enrollment.ID, enrollment.ProgramID, enrollment.ParticipantID,
		enrollment.ApplicationID, enrollment.CompletionPercentage)
	return err
}

func (r *enrollmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramEnrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM program_enrollments WHERE id = $1`
	return scanEnrollment(r.db.QueryRow(ctx, query, id))
}

func (r *enrollmentRepo) list(ctx context.Context, query string, args ...any) ([]*models.ProgramEnrollment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.ProgramEnrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

func (r *enrollmentRepo) ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramEnrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM program_enrollments WHERE program_id = $1 ORDER BY enrolled_at DESC`
	return r.list(ctx, query, programID)
}

func (r *enrollmentRepo) ListByParticipantID(ctx context.Context, participantID uuid.UUID) ([]*models.ProgramEnrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM program_enrollments WHERE participant_id = $1 ORDER BY enrolled_at DESC`
	return r.list(ctx, query, participantID)
}

func (r *enrollmentRepo) CountByProgramID(ctx context.Context, programID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM program_enrollments WHERE program_id = $1`
	err := r.db.QueryRow(ctx, query, programID).Scan(&count)
	return count, err
}

func (r *enrollmentRepo) UpdateCompletion(ctx context.Context, id uuid.UUID, completionPercentage int) error {
	query := `UPDATE program_enrollments SET completion_percentage = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, completionPercentage, id)
	return err
}
