package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"bizboost/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func TestGenerateReferenceNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^REF-[0-9A-Z]+-[0-9A-Z]{5}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref := GenerateReferenceNumber()
		assert.Regexp(t, pattern, ref)
		seen[ref] = true
	}
	// The random suffix keeps same-millisecond references distinct.
	assert.Greater(t, len(seen), 1)
}

type RegistrationServiceTestSuite struct {
	suite.Suite
	registrationRepo *MockRegistrationRepository
	documentRepo     *MockRegistrationDocumentRepository
	applicationRepo  *MockApplicationRepository
	cache            *memCache
	service          RegistrationService
}

func (suite *RegistrationServiceTestSuite) SetupTest() {
	suite.registrationRepo = &MockRegistrationRepository{}
	suite.documentRepo = &MockRegistrationDocumentRepository{}
	suite.applicationRepo = &MockApplicationRepository{}
	suite.cache = newMemCache()
	suite.service = NewRegistrationService(suite.registrationRepo, suite.documentRepo, suite.applicationRepo, suite.cache)

	suite.registrationRepo.Test(suite.T())
	suite.documentRepo.Test(suite.T())
	suite.applicationRepo.Test(suite.T())
}

func (suite *RegistrationServiceTestSuite) TearDownTest() {
	suite.registrationRepo.AssertExpectations(suite.T())
}

func TestRegistrationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegistrationServiceTestSuite))
}

func (suite *RegistrationServiceTestSuite) TestSaveDraftStep_MergesFields() {
	ctx := context.Background()

	_, err := suite.service.SaveDraftStep(ctx, "d1", "step2", map[string]any{
		"business_name": "Thandi Crafts",
	})
	assert.NoError(suite.T(), err)

	draft, err := suite.service.SaveDraftStep(ctx, "d1", "step2", map[string]any{
		"business_category": "retail",
	})
	assert.NoError(suite.T(), err)

	// The earlier field survives the later partial save.
	assert.Equal(suite.T(), "Thandi Crafts", draft.Steps["step2"]["business_name"])
	assert.Equal(suite.T(), "retail", draft.Steps["step2"]["business_category"])
	assert.Equal(suite.T(), DraftSchemaVersion, draft.Version)
}

func (suite *RegistrationServiceTestSuite) TestSaveDraftStep_UnknownStep() {
	_, err := suite.service.SaveDraftStep(context.Background(), "d1", "step9", map[string]any{"x": 1})
	assert.Error(suite.T(), err)
}

func (suite *RegistrationServiceTestSuite) TestGetDraft_MissingReturnsNil() {
	draft, err := suite.service.GetDraft(context.Background(), "nope")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), draft)
}

func (suite *RegistrationServiceTestSuite) TestGetDraft_StaleVersionDiscarded() {
	ctx := context.Background()
	stale := &RegistrationDraft{Version: 0, Steps: map[string]map[string]any{"step1": {"full_name": "x"}}}
	assert.NoError(suite.T(), suite.cache.SetJSON(ctx, "registration_draft:d1", stale, 0))

	draft, err := suite.service.GetDraft(ctx, "d1")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), draft)
}

func (suite *RegistrationServiceTestSuite) TestClearDraft() {
	ctx := context.Background()
	_, err := suite.service.SaveDraftStep(ctx, "d1", "step1", map[string]any{"full_name": "Jane"})
	assert.NoError(suite.T(), err)

	assert.NoError(suite.T(), suite.service.ClearDraft(ctx, "d1"))

	draft, err := suite.service.GetDraft(ctx, "d1")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), draft)
}

func validSubmitRequest() *SubmitRegistrationRequest {
	return &SubmitRegistrationRequest{
		FullName:         "Jane Dlamini",
		Email:            "Jane@Example.com",
		MobileNumber:     "0821234567",
		BusinessName:     "Dlamini Catering",
		BusinessCategory: "food",
		BusinessLocation: "Durban",
		BusinessType:     "sole_proprietor",
		YearsInOperation: 3,
		SelectedServices: []string{"funding", "mentorship"},
	}
}

func (suite *RegistrationServiceTestSuite) TestSubmit_CreatesPendingRegistration() {
	suite.registrationRepo.On("Create", mock.Anything, mock.MatchedBy(func(reg *models.BusinessRegistration) bool {
		return reg.Status == models.RegistrationStatusPending && reg.Email == "jane@example.com"
	})).Return(nil)

	registration, err := suite.service.Submit(context.Background(), validSubmitRequest())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RegistrationStatusPending, registration.Status)
	assert.Regexp(suite.T(), `^REF-[0-9A-Z]+-[0-9A-Z]{5}$`, registration.ReferenceNumber)
	assert.Len(suite.T(), suite.cache.publishedOn("registrations"), 1)
}

func (suite *RegistrationServiceTestSuite) TestSubmit_AppliesToSelectedPrograms() {
	applicantID := uuid.New()
	programA, programB := uuid.New(), uuid.New()

	suite.registrationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	suite.applicationRepo.On("Create", mock.Anything, mock.MatchedBy(func(app *models.ProgramApplication) bool {
		return app.ApplicantID == applicantID && app.Status == models.ApplicationStatusSubmitted
	})).Return(nil)

	req := validSubmitRequest()
	req.ApplicantID = applicantID
	req.SelectedProgramIDs = []uuid.UUID{programA, programB}

	_, err := suite.service.Submit(context.Background(), req)

	assert.NoError(suite.T(), err)
	suite.applicationRepo.AssertNumberOfCalls(suite.T(), "Create", 2)
}

func (suite *RegistrationServiceTestSuite) TestSubmit_ProgramSelectionsSkippedWithoutApplicant() {
	suite.registrationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := validSubmitRequest()
	req.SelectedProgramIDs = []uuid.UUID{uuid.New()}

	registration, err := suite.service.Submit(context.Background(), req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), registration)
	suite.applicationRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *RegistrationServiceTestSuite) TestSubmit_ApplicationFailureDoesNotFailSubmit() {
	suite.registrationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	suite.applicationRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("program gone"))

	req := validSubmitRequest()
	req.ApplicantID = uuid.New()
	req.SelectedProgramIDs = []uuid.UUID{uuid.New()}

	registration, err := suite.service.Submit(context.Background(), req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RegistrationStatusPending, registration.Status)
}

func (suite *RegistrationServiceTestSuite) TestSubmit_InvalidMobileRejected() {
	req := validSubmitRequest()
	req.MobileNumber = "12345"

	_, err := suite.service.Submit(context.Background(), req)
	assert.Error(suite.T(), err)
}

func (suite *RegistrationServiceTestSuite) TestSubmit_MissingNameRejected() {
	req := validSubmitRequest()
	req.FullName = "  "

	_, err := suite.service.Submit(context.Background(), req)
	assert.Error(suite.T(), err)
}

func (suite *RegistrationServiceTestSuite) TestList_StatusFilterIdempotent() {
	rows := []*models.BusinessRegistration{
		{ID: uuid.New(), Status: models.RegistrationStatusPending},
		{ID: uuid.New(), Status: models.RegistrationStatusApproved},
		{ID: uuid.New(), Status: models.RegistrationStatusPending},
	}
	suite.registrationRepo.On("List", mock.Anything, 50, 0).Return(rows, nil)

	first, err := suite.service.List(context.Background(), models.RegistrationStatusPending, 50, 0)
	assert.NoError(suite.T(), err)
	second, err := suite.service.List(context.Background(), models.RegistrationStatusPending, 50, 0)
	assert.NoError(suite.T(), err)

	assert.Len(suite.T(), first, 2)
	assert.Equal(suite.T(), first, second)
}

func (suite *RegistrationServiceTestSuite) TestList_InvalidStatusRejected() {
	_, err := suite.service.List(context.Background(), "bogus", 50, 0)
	assert.Error(suite.T(), err)
}

func (suite *RegistrationServiceTestSuite) TestUpdateStatus_PublishesEvent() {
	id := uuid.New()
	reviewer := uuid.New()
	suite.registrationRepo.On("GetByID", mock.Anything, id).Return(&models.BusinessRegistration{
		ID: id, ReferenceNumber: "REF-X-ABCDE", Status: models.RegistrationStatusPending,
	}, nil)
	suite.registrationRepo.On("UpdateStatus", mock.Anything, id, models.RegistrationStatusApproved, reviewer, (*string)(nil)).Return(nil)

	err := suite.service.UpdateStatus(context.Background(), id, models.RegistrationStatusApproved, reviewer, nil)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), suite.cache.publishedOn("registrations"), 1)
}

func (suite *RegistrationServiceTestSuite) TestUpdateStatus_InvalidStatusRejected() {
	err := suite.service.UpdateStatus(context.Background(), uuid.New(), "deleted", uuid.New(), nil)
	assert.Error(suite.T(), err)
}
