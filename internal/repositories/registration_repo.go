package repositories

import (
	"context"
	"time"

	"bizboost/internal/models"

	"github.com/google/uuid"
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.BusinessRegistration) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BusinessRegistration, error)
	GetByReferenceNumber(ctx context.Context, reference string) (*models.BusinessRegistration, error)
	List(ctx context.Context, limit, offset int) ([]*models.BusinessRegistration, error)
	ListSubmittedBetween(ctx context.Context, start, end time.Time) ([]*models.BusinessRegistration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, reviewerID uuid.UUID, notes *string) error
}

type registrationRepo struct {
	db DB
}

func NewRegistrationRepo(db DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

const registrationColumns = `id, reference_number, full_name, email, mobile_number, business_name,
		business_category, business_location, business_type, number_of_employees, monthly_revenue,
		years_in_operation, beee_level, selected_services, description, status, reviewed_by,
		review_notes, reviewed_at, submitted_at`

func (r *registrationRepo) Create(ctx context.Context, reg *models.BusinessRegistration) error {
	query := `
		INSERT INTO business_registrations (id, reference_number, full_name, email, mobile_number,
			business_name, business_category, business_location, business_type, number_of_employees,
			monthly_revenue, years_in_operation, beee_level, selected_services, description, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
	`
	_, err := r.db.Exec(ctx, query,
		reg.ID, reg.ReferenceNumber, reg.FullName, reg.Email, reg.MobileNumber,
		reg.BusinessName, reg.BusinessCategory, reg.BusinessLocation, reg.BusinessType,
		reg.NumberOfEmployees, reg.MonthlyRevenue, reg.YearsInOperation, reg.BEEELevel,
		reg.SelectedServices, reg.Description, reg.Status)
	return err
}

func scanRegistration(row interface{ Scan(dest ...any) error }) (*models.BusinessRegistration, error) {
	reg := &models.BusinessRegistration{}
	err := row.Scan(&reg.ID, &reg.ReferenceNumber, &reg.FullName, &reg.Email, &reg.MobileNumber,
		&reg.BusinessName, &reg.BusinessCategory, &reg.BusinessLocation, &reg.BusinessType,
		&reg.NumberOfEmployees, &reg.MonthlyRevenue, &reg.YearsInOperation, &reg.BEEELevel,
		&reg.SelectedServices, &reg.Description, &reg.Status, &reg.ReviewedBy,
		&reg.ReviewNotes, &reg.ReviewedAt, &reg.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BusinessRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM business_registrations WHERE id = $1`
	return scanRegistration(r.db.QueryRow(ctx, query, id))
}

func (r *registrationRepo) GetByReferenceNumber(ctx context.Context, reference string) (*models.BusinessRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM business_registrations WHERE reference_number = $1`
	return scanRegistration(r.db.QueryRow(ctx, query, reference))
}

func (r *registrationRepo) List(ctx context.Context, limit, offset int) ([]*models.BusinessRegistration, error) {
	query := `SELECT ` + registrationColumns + `
		FROM business_registrations
		ORDER BY submitted_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var registrations []*models.BusinessRegistration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, reg)
	}
	return registrations, rows.Err()
}

func (r *registrationRepo) ListSubmittedBetween(ctx context.Context, start, end time.Time) ([]*models.BusinessRegistration, error) {
	query := `SELECT ` + registrationColumns + `
		FROM business_registrations
		WHERE submitted_at >= $1 AND submitted_at < $2
		ORDER BY submitted_at`
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var registrations []*models.BusinessRegistration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, reg)
	}
	return registrations, rows.Err()
}

func (r *registrationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, reviewerID uuid.UUID, notes *string) error {
	query := `
		UPDATE business_registrations
		SET status = $1, reviewed_by = $2, review_notes = $3, reviewed_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, status, reviewerID, notes, id)
	return err
}
