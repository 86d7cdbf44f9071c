package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"bizboost/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RegistrationRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    RegistrationRepository
	regID   uuid.UUID
	context context.Context
}

func (suite *RegistrationRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewRegistrationRepo(mock)
	suite.regID = uuid.New()
	suite.context = context.Background()
}

func (suite *RegistrationRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestRegistrationRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RegistrationRepoTestSuite))
}

var registrationRowColumns = []string{
	"id", "reference_number", "full_name", "email", "mobile_number", "business_name",
	"business_category", "business_location", "business_type", "number_of_employees",
	"monthly_revenue", "years_in_operation", "beee_level", "selected_services", "description",
	"status", "reviewed_by", "review_notes", "reviewed_at", "submitted_at",
}

func registrationRow(id uuid.UUID, reference, status string, submittedAt time.Time) []any {
	return []any{
		id, reference, "Jane Dlamini", "jane@example.com", "0821234567", "Dlamini Catering",
		"food", "Durban", "sole_proprietor", "1-5",
		"10000-50000", 3, "level_4", []string{"funding", "mentorship"}, "Catering business",
		status, (*uuid.UUID)(nil), (*string)(nil), (*time.Time)(nil), submittedAt,
	}
}

func (suite *RegistrationRepoTestSuite) TestCreate_Success() {
	reg := &models.BusinessRegistration{
		ID:               suite.regID,
		ReferenceNumber:  "REF-ABC123-XY9Z8",
		FullName:         "Jane Dlamini",
		Email:            "jane@example.com",
		MobileNumber:     "0821234567",
		BusinessName:     "Dlamini Catering",
		BusinessCategory: "food",
		BusinessLocation: "Durban",
		BusinessType:     "sole_proprietor",
		YearsInOperation: 3,
		SelectedServices: []string{"funding"},
		Status:           models.RegistrationStatusPending,
	}

	suite.mock.ExpectExec(`
			INSERT INTO business_registrations \(id, reference_number, full_name, email, mobile_number,
				business_name, business_category, business_location, business_type, number_of_employees,
				monthly_revenue, years_in_operation, beee_level, selected_services, description, status, submitted_at\)
			VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, \$9, \$10, \$11, \$12, \$13, \$14, \$15, \$16, NOW\(\)\)
		`).WithArgs(reg.ID, reg.ReferenceNumber, reg.FullName, reg.Email, reg.MobileNumber,
		reg.BusinessName, reg.BusinessCategory, reg.BusinessLocation, reg.BusinessType,
		reg.NumberOfEmployees, reg.MonthlyRevenue, reg.YearsInOperation, reg.BEEELevel,
		reg.SelectedServices, reg.Description, reg.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, reg)
	assert.NoError(suite.T(), err)
}

func (suite *RegistrationRepoTestSuite) TestCreate_DatabaseError() {
	reg := &models.BusinessRegistration{ID: suite.regID, Status: models.RegistrationStatusPending}

	suite.mock.ExpectExec(`INSERT INTO business_registrations`).
		WithArgs(reg.ID, reg.ReferenceNumber, reg.FullName, reg.Email, reg.MobileNumber,
			reg.BusinessName, reg.BusinessCategory, reg.BusinessLocation, reg.BusinessType,
			reg.NumberOfEmployees, reg.MonthlyRevenue, reg.YearsInOperation, reg.BEEELevel,
			reg.SelectedServices, reg.Description, reg.Status).
		WillReturnError(errors.New("database connection failed"))

	err := suite.repo.Create(suite.context, reg)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "database connection failed")
}

func (suite *RegistrationRepoTestSuite) TestGetByID_Success() {
	submittedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`SELECT (.+) FROM business_registrations WHERE id = \$1`).
		WithArgs(suite.regID).
		WillReturnRows(pgxmock.NewRows(registrationRowColumns).
			AddRow(registrationRow(suite.regID, "REF-ABC123-XY9Z8", models.RegistrationStatusPending, submittedAt)...))

	result, err := suite.repo.GetByID(suite.context, suite.regID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.regID, result.ID)
	assert.Equal(suite.T(), "REF-ABC123-XY9Z8", result.ReferenceNumber)
	assert.Equal(suite.T(), []string{"funding", "mentorship"}, result.SelectedServices)
	assert.Nil(suite.T(), result.ReviewedBy)
}

func (suite *RegistrationRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM business_registrations WHERE id = \$1`).
		WithArgs(suite.regID).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByID(suite.context, suite.regID)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), result)
}

func (suite *RegistrationRepoTestSuite) TestGetByReferenceNumber_Success() {
	submittedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`SELECT (.+) FROM business_registrations WHERE reference_number = \$1`).
		WithArgs("REF-ABC123-XY9Z8").
		WillReturnRows(pgxmock.NewRows(registrationRowColumns).
			AddRow(registrationRow(suite.regID, "REF-ABC123-XY9Z8", models.RegistrationStatusPending, submittedAt)...))

	result, err := suite.repo.GetByReferenceNumber(suite.context, "REF-ABC123-XY9Z8")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.regID, result.ID)
}

func (suite *RegistrationRepoTestSuite) TestList_Success() {
	limit, offset := 50, 0
	later := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(registrationRowColumns).
		AddRow(registrationRow(uuid.New(), "REF-B-BBBBB", models.RegistrationStatusPending, later)...).
		AddRow(registrationRow(uuid.New(), "REF-A-AAAAA", models.RegistrationStatusApproved, earlier)...)

	suite.mock.ExpectQuery(`
			SELECT (.+)
			FROM business_registrations
			ORDER BY submitted_at DESC
			LIMIT \$1 OFFSET \$2`).
		WithArgs(limit, offset).
		WillReturnRows(rows)

	result, err := suite.repo.List(suite.context, limit, offset)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.Equal(suite.T(), "REF-B-BBBBB", result[0].ReferenceNumber)
}

func (suite *RegistrationRepoTestSuite) TestList_EmptyResult() {
	suite.mock.ExpectQuery(`
			SELECT (.+)
			FROM business_registrations
			ORDER BY submitted_at DESC
			LIMIT \$1 OFFSET \$2`).
		WithArgs(50, 0).
		WillReturnRows(pgxmock.NewRows(registrationRowColumns))

	result, err := suite.repo.List(suite.context, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), result)
}

func (suite *RegistrationRepoTestSuite) TestListSubmittedBetween() {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(registrationRowColumns).
		AddRow(registrationRow(uuid.New(), "REF-A-AAAAA", models.RegistrationStatusPending, start.Add(24*time.Hour))...)

	suite.mock.ExpectQuery(`
			SELECT (.+)
			FROM business_registrations
			WHERE submitted_at >= \$1 AND submitted_at < \$2
			ORDER BY submitted_at`).
		WithArgs(start, end).
		WillReturnRows(rows)

	result, err := suite.repo.ListSubmittedBetween(suite.context, start, end)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 1)
}

func (suite *RegistrationRepoTestSuite) TestUpdateStatus_Success() {
	reviewerID := uuid.New()
	notes := "Documents verified"

	suite.mock.ExpectExec(`
			UPDATE business_registrations
			SET status = \$1, reviewed_by = \$2, review_notes = \$3, reviewed_at = NOW\(\)
			WHERE id = \$4
		`).WithArgs(models.RegistrationStatusApproved, reviewerID, &notes, suite.regID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateStatus(suite.context, suite.regID, models.RegistrationStatusApproved, reviewerID, &notes)
	assert.NoError(suite.T(), err)
}

func (suite *RegistrationRepoTestSuite) TestUpdateStatus_DatabaseError() {
	reviewerID := uuid.New()

	suite.mock.ExpectExec(`UPDATE business_registrations`).
		WithArgs(models.RegistrationStatusRejected, reviewerID, (*string)(nil), suite.regID).
		WillReturnError(errors.New("deadlock detected"))

	err := suite.repo.UpdateStatus(suite.context, suite.regID, models.RegistrationStatusRejected, reviewerID, nil)
	assert.Error(suite.T(), err)
}
