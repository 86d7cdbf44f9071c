package repositories

import (
	"context"

	"bizboost/internal/models"

	"github.com/google/uuid"
)

type ProgramRepository interface {
	Create(ctx context.Context, program *models.Program) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Program, error)
	GetByLinkID(ctx context.Context, linkID string) (*models.Program, error)
	Update(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Program, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Program, error)
	SetApplicationLinkID(ctx context.Context, id uuid.UUID, linkID string) error
}

type programRepo struct {
	db DB
}

func NewProgramRepo(db DB) ProgramRepository {
	return &programRepo{db: db}
}

const programColumns = `id, name, description, status, start_date, end_date, application_deadline,
		capacity, application_link_id, created_by, created_at, updated_at`

func scanProgram(row interface{ Scan(dest ...any) error }) (*models.Program, error) {
	p := &models.Program{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.StartDate, &p.EndDate,
		&p.ApplicationDeadline, &p.Capacity, &p.ApplicationLinkID, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *programRepo) Create(ctx context.Context, program *models.Program) error {
	query := `
		INSERT INTO programs (id, name, description, status, start_date, end_date, application_deadline,
			capacity, application_link_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		program.ID, program.Name, program.Description, program.Status, program.StartDate,
		program.EndDate, program.ApplicationDeadline, program.Capacity, program.ApplicationLinkID, program.CreatedBy)
	return err
}

func (r *programRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE id = $1`
	return scanProgram(r.db.QueryRow(ctx, query, id))
}

func (r *programRepo) GetByLinkID(ctx context.Context, linkID string) (*models.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE application_link_id = $1`
	return scanProgram(r.db.QueryRow(ctx, query, linkID))
}

func (r *programRepo) Update(ctx context.Context, program *models.Program) error {
	query := `
		UPDATE programs
		SET name = $1, description = $2, status = $3, start_date = $4, end_date = $5,
			application_deadline = $6, capacity = $7, updated_at = NOW()
		WHERE id = $8
	`
	_, err := r.db.Exec(ctx, query,
		program.Name, program.Description, program.Status, program.StartDate,
		program.EndDate, program.ApplicationDeadline, program.Capacity, program.ID)
	return err
}

func (r *programRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM programs WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *programRepo) List(ctx context.Context, limit, offset int) ([]*models.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (r *programRepo) ListByStatus(ctx context.Context, status string) ([]*models.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE status = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (r *programRepo) SetApplicationLinkID(ctx context.Context, id uuid.UUID, linkID string) error {
	query := `UPDATE programs SET application_link_id = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, linkID, id)
	return err
}
