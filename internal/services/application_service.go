package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"bizboost/internal/caching"
	"bizboost/internal/common"
	"bizboost/internal/models"
	"bizboost/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ApplicationUploadsBucket holds files attached to public applications.
const ApplicationUploadsBucket = "application-uploads"

// PublicUpload is one file attached to a public form submission.
type PublicUpload struct {
	FieldID     string
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// PublicSubmissionRequest carries everything the public form collects:
// applicant identity, a minimal business profile, the form field values,
// and any file uploads.
type PublicSubmissionRequest struct {
	LinkID string

	FullName     string
	Email        string
	MobileNumber string

	BusinessName     string
	BusinessCategory string
	BusinessLocation string
	BusinessType     string

	Values  map[string]any
	Uploads []PublicUpload
}

// ApplicationEvent is published on the change feed when an application is
// submitted or reviewed.
type ApplicationEvent struct {
	Type          string    `json:"type"`
	ApplicationID uuid.UUID `json:"application_id"`
	ProgramID     uuid.UUID `json:"program_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type ApplicationService interface {
	SubmitPublic(ctx context.Context, req *PublicSubmissionRequest) (*models.ProgramApplication, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramApplication, error)
	List(ctx context.Context, status string, limit, offset int) ([]*models.ProgramApplication, error)
	ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramApplication, error)
	ListByApplicantID(ctx context.Context, applicantID uuid.UUID) ([]*models.ProgramApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, reviewerID uuid.UUID, notes *string) error
	Approve(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, notes *string) (*models.ProgramEnrollment, error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	enrollmentRepo  repositories.EnrollmentRepository
	programRepo     repositories.ProgramRepository
	formRepo        repositories.ApplicationFormRepository
	userRepo        repositories.UserRepository
	userRoleRepo    repositories.UserRoleRepository
	businessRepo    repositories.BusinessRepository
	formSvc         FormService
	storageSvc      StorageService
	cacheSvc        caching.CacheService
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	enrollmentRepo repositories.EnrollmentRepository,
	programRepo repositories.ProgramRepository,
	formRepo repositories.ApplicationFormRepository,
	userRepo repositories.UserRepository,
	userRoleRepo repositories.UserRoleRepository,
	businessRepo repositories.BusinessRepository,
	formSvc FormService,
	storageSvc StorageService,
	cacheSvc caching.CacheService,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		enrollmentRepo:  enrollmentRepo,
		programRepo:     programRepo,
		formRepo:        formRepo,
		userRepo:        userRepo,
		userRoleRepo:    userRoleRepo,
		businessRepo:    businessRepo,
		formSvc:         formSvc,
		storageSvc:      storageSvc,
		cacheSvc:        cacheSvc,
	}
}

// SubmitPublic runs the public form pipeline: resolve the program by link
// token, validate values against the active form, provision the applicant
// account, create the business, upload the files, then create the
// application. The sequence aborts on the first failure and does not roll
// back earlier steps, so a failed upload can leave a provisioned account
// and business behind. Admins see those as orphans until the applicant
// retries.
func (s *applicationService) SubmitPublic(ctx context.Context, req *PublicSubmissionRequest) (*models.ProgramApplication, error) {
	if err := common.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.FullName, "full_name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.BusinessName, "business_name"); err != nil {
		return nil, err
	}

	program, err := s.programRepo.GetByLinkID(ctx, req.LinkID)
	if err != nil {
		return nil, fmt.Errorf("application link not found: %w", err)
	}
	if program.Status != models.ProgramStatusActive {
		return nil, fmt.Errorf("program is not accepting applications")
	}

	form, err := s.formRepo.GetActiveByProgramID(ctx, program.ID)
	if err != nil {
		return nil, fmt.Errorf("no active application form for program: %w", err)
	}
	if err := s.formSvc.ValidateSubmission(form, req.Values); err != nil {
		return nil, err
	}

	applicant, err := s.provisionApplicant(ctx, req)
	if err != nil {
		return nil, err
	}

	business := &models.Business{
		ID:               uuid.New(),
		OwnerID:          applicant.ID,
		BusinessName:     req.BusinessName,
		BusinessCategory: req.BusinessCategory,
		BusinessLocation: req.BusinessLocation,
		BusinessType:     req.BusinessType,
	}
	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, fmt.Errorf("failed to create business: %w", err)
	}

	applicationID := uuid.New()
	data := make(map[string]any, len(req.Values)+len(req.Uploads))
	for k, v := range req.Values {
		data[k] = v
	}
	for _, upload := range req.Uploads {
		objectName := fmt.Sprintf("%s/%s-%s", applicationID, upload.FieldID, upload.FileName)
		if err := s.storageSvc.UploadDocument(ctx, ApplicationUploadsBucket, objectName, upload.Reader, upload.Size, upload.ContentType); err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", upload.FileName, err)
		}
		data[upload.FieldID] = objectName
	}

	application := &models.ProgramApplication{
		ID:              applicationID,
		ProgramID:       program.ID,
		ApplicantID:     applicant.ID,
		BusinessID:      business.ID,
		ApplicationData: data,
		Status:          models.ApplicationStatusSubmitted,
		SubmittedAt:     time.Now(),
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.publish(ctx, "application_submitted", application)
	return application, nil
}

// provisionApplicant reuses an existing account for the email or creates
// one with a temporary password the applicant resets later.
func (s *applicationService) provisionApplicant(ctx context.Context, req *PublicSubmissionRequest) (*models.User, error) {
	email := strings.ToLower(req.Email)

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return existing, nil
	}

	tempPassword := fmt.Sprintf("temp_%d", time.Now().Unix())
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash temporary password: %w", err)
	}

	applicant := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		MobileNumber: req.MobileNumber,
	}
	if err := s.userRepo.Create(ctx, applicant); err != nil {
		return nil, fmt.Errorf("failed to provision applicant account: %w", err)
	}

	if err := s.userRoleRepo.Create(ctx, &models.UserRole{
		ID:     uuid.New(),
		UserID: applicant.ID,
		Role:   models.RoleParticipant,
	}); err != nil {
		log.Printf("Failed to assign participant role to %s: %v", applicant.ID, err)
	}

	return applicant, nil
}

func (s *applicationService) GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramApplication, error) {
	return s.applicationRepo.GetByID(ctx, id)
}

func (s *applicationService) List(ctx context.Context, status string, limit, offset int) ([]*models.ProgramApplication, error) {
	if status != "" && !models.ValidApplicationStatuses[status] {
		return nil, fmt.Errorf("invalid application status: %s", status)
	}

	applications, err := s.applicationRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return applications, nil
	}

	filtered := make([]*models.ProgramApplication, 0, len(applications))
	for _, app := range applications {
		if app.Status == status {
			filtered = append(filtered, app)
		}
	}
	return filtered, nil
}

func (s *applicationService) ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramApplication, error) {
	return s.applicationRepo.ListByProgramID(ctx, programID)
}

func (s *applicationService) ListByApplicantID(ctx context.Context, applicantID uuid.UUID) ([]*models.ProgramApplication, error) {
	return s.applicationRepo.ListByApplicantID(ctx, applicantID)
}

// UpdateStatus sets any non-approved status. Approval goes through Approve
// so the enrollment side effect cannot be skipped.
func (s *applicationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, reviewerID uuid.UUID, notes *string) error {
	if !models.ValidApplicationStatuses[status] {
		return fmt.Errorf("invalid application status: %s", status)
	}
	if status == models.ApplicationStatusApproved {
		return fmt.Errorf("use the approve operation to approve an application")
	}

	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("application not found: %w", err)
	}

	if err := s.applicationRepo.UpdateStatus(ctx, id, status, reviewerID, notes); err != nil {
		return err
	}

	application.Status = status
	s.publish(ctx, "application_status_changed", application)
	return nil
}

// Approve marks the application approved and creates exactly one enrollment
// linking program, participant, and application. An already approved
// application is rejected here rather than enrolled twice.
func (s *applicationService) Approve(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, notes *string) (*models.ProgramEnrollment, error) {
	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("application not found: %w", err)
	}
	if application.Status == models.ApplicationStatusApproved {
		return nil, fmt.Errorf("application already approved")
	}

	if err := s.applicationRepo.UpdateStatus(ctx, id, models.ApplicationStatusApproved, reviewerID, notes); err != nil {
		return nil, err
	}

	enrollment := &models.ProgramEnrollment{
		ID:                   uuid.New(),
		ProgramID:            application.ProgramID,
		ParticipantID:        application.ApplicantID,
		ApplicationID:        application.ID,
		CompletionPercentage: 0,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	application.Status = models.ApplicationStatusApproved
	s.publish(ctx, "application_approved", application)
	return enrollment, nil
}

func (s *applicationService) publish(ctx context.Context, eventType string, application *models.ProgramApplication) {
	event := ApplicationEvent{
		Type:          eventType,
		ApplicationID: application.ID,
		ProgramID:     application.ProgramID,
		Status:        application.Status,
		OccurredAt:    time.Now(),
	}
	if err := s.cacheSvc.PublishEvent(ctx, "applications", event); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
