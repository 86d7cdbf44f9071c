package repositories

import (
	"context"

	"bizboost/internal/models"

	"github.com/google/uuid"
)

type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Business, error)
	List(ctx context.Context, limit, offset int) ([]*models.Business, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
}

type businessRepo struct {
	db DB
}

func NewBusinessRepo(db DB) BusinessRepository {
	return &businessRepo{db: db}
}

const businessColumns = `id, owner_id, business_name, business_category, business_location, business_type,
		number_of_employees, monthly_revenue, years_in_operation, beee_level, created_at`

func (r *businessRepo) Create(ctx context.Context, business *models.Business) error {
	query := `
		INSERT INTO businesses (id, owner_id, business_name, business_category, business_location, business_type,
			number_of_employees, monthly_revenue, years_in_operation, beee_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`
	_, err := r.db.Exec(ctx, query,
		business.ID, business.OwnerID, business.BusinessName, business.BusinessCategory,
		business.BusinessLocation, business.BusinessType, business.NumberOfEmployees,
		business.MonthlyRevenue, business.YearsInOperation, business.BEEELevel)
	return err
}

func scanBusiness(row interface{ Scan(dest ...any) error }) (*models.Business, error) {
	b := &models.Business{}
	err := row.Scan(&b.ID, &b.OwnerID, &b.BusinessName, &b.BusinessCategory, &b.BusinessLocation,
		&b.BusinessType, &b.NumberOfEmployees, &b.MonthlyRevenue, &b.YearsInOperation, &b.BEEELevel, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *businessRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`
	return scanBusiness(r.db.QueryRow(ctx, query, id))
}

func (r *businessRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []*models.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

func (r *businessRepo) List(ctx context.Context, limit, offset int) ([]*models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []*models.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

func (r *businessRepo) CountByCategory(ctx context.Context) (map[string]int, error) {
	query := `SELECT business_category, COUNT(*) FROM businesses GROUP BY business_category`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}
