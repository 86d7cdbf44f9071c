package services

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"bizboost/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// memCache is an in-memory stand-in for the Redis-backed cache service.
type memCache struct {
	mu        sync.Mutex
	data      map[string][]byte
	published map[string][]string
}

func newMemCache() *memCache {
	return &memCache{
		data:      make(map[string][]byte),
		published: make(map[string][]string),
	}
}

func (m *memCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memCache) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = []byte(value)
	return nil
}

func (m *memCache) GetString(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data[key]), nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return false, nil
}

func (m *memCache) PublishEvent(ctx context.Context, channel string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published[channel] = append(m.published[channel], string(raw))
	return nil
}

func (m *memCache) SubscribeEvents(ctx context.Context, channel string) (<-chan string, func(), error) {
	ch := make(chan string)
	return ch, func() { close(ch) }, nil
}

func (m *memCache) Ping(ctx context.Context) error {
	return nil
}

func (m *memCache) publishedOn(channel string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.published[channel]
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockUserRoleRepository struct {
	mock.Mock
}

func (m *MockUserRoleRepository) Create(ctx context.Context, userRole *models.UserRole) error {
	args := m.Called(ctx, userRole)
	return args.Error(0)
}

func (m *MockUserRoleRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.UserRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserRole), args.Error(1)
}

func (m *MockUserRoleRepository) Delete(ctx context.Context, userID uuid.UUID, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, registration *models.BusinessRegistration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *MockRegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BusinessRegistration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BusinessRegistration), args.Error(1)
}

func (m *MockRegistrationRepository) GetByReferenceNumber(ctx context.Context, reference string) (*models.BusinessRegistration, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BusinessRegistration), args.Error(1)
}

func (m *MockRegistrationRepository) List(ctx context.Context, limit, offset int) ([]*models.BusinessRegistration, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BusinessRegistration), args.Error(1)
}

func (m *MockRegistrationRepository) ListSubmittedBetween(ctx context.Context, start, end time.Time) ([]*models.BusinessRegistration, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BusinessRegistration), args.Error(1)
}

func (m *MockRegistrationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, reviewerID uuid.UUID, notes *string) error {
	args := m.Called(ctx, id, status, reviewerID, notes)
	return args.Error(0)
}

type MockRegistrationDocumentRepository struct {
	mock.Mock
}

func (m *MockRegistrationDocumentRepository) Create(ctx context.Context, document *models.RegistrationDocument) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockRegistrationDocumentRepository) ListByRegistrationID(ctx context.Context, registrationID uuid.UUID) ([]*models.RegistrationDocument, error) {
	args := m.Called(ctx, registrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RegistrationDocument), args.Error(1)
}

func (m *MockRegistrationDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, application *models.ProgramApplication) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgramApplication), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, limit, offset int) ([]*models.ProgramApplication, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProgramApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramApplication, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProgramApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListByApplicantID(ctx context.Context, applicantID uuid.UUID) ([]*models.ProgramApplication, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProgramApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListSubmittedBetween(ctx context.Context, start, end time.Time) ([]*models.ProgramApplication, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProgramApplication), args.Error(1)
}

func (m *MockApplicationRepository) CountByProgramID(ctx context.Context, programID uuid.UUID) (int, error) {
	args := m.Called(ctx, programID)
	return args.Int(0), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, reviewerID uuid.UUID, notes *string) error {
	args := m.Called(ctx, id, status, reviewerID, notes)
	return args.Error(0)
}

type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, enrollment *models.ProgramEnrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramEnrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgramEnrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramEnrollment, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProgramEnrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) ListByParticipantID(ctx context.Context, participantID uuid.UUID) ([]*models.ProgramEnrollment, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProgramEnrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) CountByProgramID(ctx context.Context, programID uuid.UUID) (int, error) {
	args := m.Called(ctx, programID)
	return args.Int(0), args.Error(1)
}

func (m *MockEnrollmentRepository) UpdateCompletion(ctx context.Context, id uuid.UUID, completionPercentage int) error {
	args := m.Called(ctx, id, completionPercentage)
	return args.Error(0)
}

type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) Create(ctx context.Context, program *models.Program) error {
	args := m.Called(ctx, program)
	return args.Error(0)
}

func (m *MockProgramRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Program), args.Error(1)
}

func (m *MockProgramRepository) GetByLinkID(ctx context.Context, linkID string) (*models.Program, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Program), args.Error(1)
}

func (m *MockProgramRepository) Update(ctx context.Context, program *models.Program) error {
	args := m.Called(ctx, program)
	return args.Error(0)
}

func (m *MockProgramRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProgramRepository) List(ctx context.Context, limit, offset int) ([]*models.Program, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Program), args.Error(1)
}

func (m *MockProgramRepository) ListByStatus(ctx context.Context, status string) ([]*models.Program, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Program), args.Error(1)
}

func (m *MockProgramRepository) SetApplicationLinkID(ctx context.Context, id uuid.UUID, linkID string) error {
	args := m.Called(ctx, id, linkID)
	return args.Error(0)
}

type MockApplicationFormRepository struct {
	mock.Mock
}

func (m *MockApplicationFormRepository) Create(ctx context.Context, form *models.ApplicationForm) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockApplicationFormRepository) GetActiveByProgramID(ctx context.Context, programID uuid.UUID) (*models.ApplicationForm, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApplicationForm), args.Error(1)
}

func (m *MockApplicationFormRepository) Deactivate(ctx context.Context, programID uuid.UUID) error {
	args := m.Called(ctx, programID)
	return args.Error(0)
}

type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) Create(ctx context.Context, business *models.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *MockBusinessRepository) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Business, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Business), args.Error(1)
}

func (m *MockBusinessRepository) List(ctx context.Context, limit, offset int) ([]*models.Business, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Business), args.Error(1)
}

func (m *MockBusinessRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

type MockProgramEventRepository struct {
	mock.Mock
}

func (m *MockProgramEventRepository) Create(ctx context.Context, event *models.ProgramEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockProgramEventRepository) ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramEvent, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProgramEvent), args.Error(1)
}

func (m *MockProgramEventRepository) CountByProgramID(ctx context.Context, programID uuid.UUID) (int, error) {
	args := m.Called(ctx, programID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgramEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProgramMaterialRepository struct {
	mock.Mock
}

func (m *MockProgramMaterialRepository) Create(ctx context.Context, material *models.ProgramMaterial) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockProgramMaterialRepository) ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramMaterial, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProgramMaterial), args.Error(1)
}

func (m *MockProgramMaterialRepository) CountByProgramID(ctx context.Context, programID uuid.UUID) (int, error) {
	args := m.Called(ctx, programID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgramMaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) UploadDocument(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockStorageService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) DeleteDocument(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockStorageService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *MockStorageService) Healthy(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
