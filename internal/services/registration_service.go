package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"bizboost/internal/caching"
	"bizboost/internal/common"
	"bizboost/internal/models"
	"bizboost/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
)

// DraftSchemaVersion tags stored wizard drafts. A draft with an older
// version is discarded on load instead of being migrated.
const DraftSchemaVersion = 1

const draftTTL = 30 * 24 * time.Hour

// RegistrationDraft is the server-side wizard draft. Steps are stored as
// loose maps so a partial save merges field-by-field instead of replacing
// the whole step.
type RegistrationDraft struct {
	Version   int                       `json:"version"`
	Steps     map[string]map[string]any `json:"steps"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

var draftStepKeys = map[string]bool{
	"step1": true, // applicant contact
	"step2": true, // business profile
	"step3": true, // documents
	"step4": true, // service selection
	"step5": true, // review
}

// RegistrationEvent is published on the change feed when a registration
// is submitted or its status changes.
type RegistrationEvent struct {
	Type            string    `json:"type"`
	RegistrationID  uuid.UUID `json:"registration_id"`
	ReferenceNumber string    `json:"reference_number"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// SubmitRegistrationRequest is the flattened wizard payload. The handler
// assembles it from the stored draft or accepts it directly.
type SubmitRegistrationRequest struct {
	FullName          string   `json:"full_name"`
	Email             string   `json:"email"`
	MobileNumber      string   `json:"mobile_number"`
	BusinessName      string   `json:"business_name"`
	BusinessCategory  string   `json:"business_category"`
	BusinessLocation  string   `json:"business_location"`
	BusinessType      string   `json:"business_type"`
	NumberOfEmployees string   `json:"number_of_employees"`
	MonthlyRevenue    string   `json:"monthly_revenue"`
	YearsInOperation  int      `json:"years_in_operation"`
	BEEELevel         string   `json:"beee_level"`
	SelectedServices  []string `json:"selected_services"`
	Description       string   `json:"description"`

	// Program interest captured on the services step. Applications are
	// created best-effort after the registration record lands. ApplicantID
	// is set from the request context when the wizard ran for a signed-in
	// user; without one the program selections are skipped with a warning.
	SelectedProgramIDs []uuid.UUID `json:"selected_program_ids"`
	ApplicantID        uuid.UUID   `json:"-"`
}

type RegistrationService interface {
	SaveDraftStep(ctx context.Context, draftID, step string, fields map[string]any) (*RegistrationDraft, error)
	GetDraft(ctx context.Context, draftID string) (*RegistrationDraft, error)
	ClearDraft(ctx context.Context, draftID string) error

	Submit(ctx context.Context, req *SubmitRegistrationRequest) (*models.BusinessRegistration, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.BusinessRegistration, error)
	GetByReferenceNumber(ctx context.Context, reference string) (*models.BusinessRegistration, error)
	List(ctx context.Context, status string, limit, offset int) ([]*models.BusinessRegistration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, reviewerID uuid.UUID, notes *string) error
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	documentRepo     repositories.RegistrationDocumentRepository
	applicationRepo  repositories.ApplicationRepository
	cacheSvc         caching.CacheService
}

func NewRegistrationService(registrationRepo repositories.RegistrationRepository, documentRepo repositories.RegistrationDocumentRepository, applicationRepo repositories.ApplicationRepository, cacheSvc caching.CacheService) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		documentRepo:     documentRepo,
		applicationRepo:  applicationRepo,
		cacheSvc:         cacheSvc,
	}
}

func draftKey(draftID string) string {
	return "registration_draft:" + draftID
}

// SaveDraftStep merges the given fields into one wizard step and persists
// the draft. Fields absent from the payload keep their stored values, so
// saving {business_name} does not clobber a previously saved
// {business_category}.
func (s *registrationService) SaveDraftStep(ctx context.Context, draftID, step string, fields map[string]any) (*RegistrationDraft, error) {
	if !draftStepKeys[step] {
		return nil, fmt.Errorf("unknown wizard step: %s", step)
	}

	draft, err := s.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		draft = &RegistrationDraft{
			Version: DraftSchemaVersion,
			Steps:   make(map[string]map[string]any),
		}
	}

	existing := draft.Steps[step]
	if existing == nil {
		existing = make(map[string]any)
	}
	for k, v := range fields {
		existing[k] = v
	}
	draft.Steps[step] = existing
	draft.UpdatedAt = time.Now()

	if err := s.cacheSvc.SetJSON(ctx, draftKey(draftID), draft, draftTTL); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

// GetDraft loads a draft, returning nil when no draft exists or the stored
// schema version does not match.
func (s *registrationService) GetDraft(ctx context.Context, draftID string) (*RegistrationDraft, error) {
	draft := &RegistrationDraft{}
	found, err := s.cacheSvc.GetJSON(ctx, draftKey(draftID), draft)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	if draft.Version != DraftSchemaVersion {
		log.Printf("Discarding draft %s with stale schema version %d", draftID, draft.Version)
		return nil, nil
	}
	return draft, nil
}

func (s *registrationService) ClearDraft(ctx context.Context, draftID string) error {
	return s.cacheSvc.Delete(ctx, draftKey(draftID))
}

// GenerateReferenceNumber produces a human-quotable reference of the form
// REF-<base36 millis>-<5 char suffix>, uppercase throughout.
func GenerateReferenceNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := random.String(5, random.Uppercase, random.Numeric)
	return fmt.Sprintf("REF-%s-%s", ts, suffix)
}

// Submit validates the wizard payload, creates the registration in pending
// status, and announces it on the change feed. The reference number is
// generated here and returned for the confirmation screen.
func (s *registrationService) Submit(ctx context.Context, req *SubmitRegistrationRequest) (*models.BusinessRegistration, error) {
	if err := common.ValidateRequiredString(req.FullName, "full_name"); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := common.ValidateSAMobile(req.MobileNumber); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.BusinessName, "business_name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.BusinessCategory, "business_category"); err != nil {
		return nil, err
	}
	if req.YearsInOperation < 0 {
		return nil, fmt.Errorf("years_in_operation cannot be negative")
	}

	registration := &models.BusinessRegistration{
		ID:                uuid.New(),
		ReferenceNumber:   GenerateReferenceNumber(),
		FullName:          req.FullName,
		Email:             strings.ToLower(req.Email),
		MobileNumber:      req.MobileNumber,
		BusinessName:      req.BusinessName,
		BusinessCategory:  req.BusinessCategory,
		BusinessLocation:  req.BusinessLocation,
		BusinessType:      req.BusinessType,
		NumberOfEmployees: req.NumberOfEmployees,
		MonthlyRevenue:    req.MonthlyRevenue,
		YearsInOperation:  req.YearsInOperation,
		BEEELevel:         req.BEEELevel,
		SelectedServices:  req.SelectedServices,
		Description:       req.Description,
		Status:            models.RegistrationStatusPending,
		SubmittedAt:       time.Now(),
	}

	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	s.publish(ctx, "registration_submitted", registration)
	s.applyToPrograms(ctx, registration, req)
	return registration, nil
}

// applyToPrograms creates one submitted application per program picked in
// the wizard. Each create is best-effort: a failure logs and moves on, the
// registration record stands on its own either way.
func (s *registrationService) applyToPrograms(ctx context.Context, registration *models.BusinessRegistration, req *SubmitRegistrationRequest) {
	if len(req.SelectedProgramIDs) == 0 {
		return
	}
	if req.ApplicantID == uuid.Nil {
		log.Printf("Skipping %d program selections on registration %s: no signed-in applicant", len(req.SelectedProgramIDs), registration.ReferenceNumber)
		return
	}

	for _, programID := range req.SelectedProgramIDs {
		application := &models.ProgramApplication{
			ID:          uuid.New(),
			ProgramID:   programID,
			ApplicantID: req.ApplicantID,
			ApplicationData: map[string]any{
				"registration_reference": registration.ReferenceNumber,
			},
			Status:      models.ApplicationStatusSubmitted,
			SubmittedAt: time.Now(),
		}
		if err := s.applicationRepo.Create(ctx, application); err != nil {
			log.Printf("Failed to apply registration %s to program %s: %v", registration.ReferenceNumber, programID, err)
		}
	}
}

func (s *registrationService) GetByID(ctx context.Context, id uuid.UUID) (*models.BusinessRegistration, error) {
	registration, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.attachDocuments(ctx, registration), nil
}

func (s *registrationService) GetByReferenceNumber(ctx context.Context, reference string) (*models.BusinessRegistration, error) {
	registration, err := s.registrationRepo.GetByReferenceNumber(ctx, reference)
	if err != nil {
		return nil, err
	}
	return s.attachDocuments(ctx, registration), nil
}

func (s *registrationService) attachDocuments(ctx context.Context, registration *models.BusinessRegistration) *models.BusinessRegistration {
	documents, err := s.documentRepo.ListByRegistrationID(ctx, registration.ID)
	if err != nil {
		log.Printf("Failed to load documents for registration %s: %v", registration.ID, err)
		return registration
	}
	registration.Documents = documents
	return registration
}

// List returns registrations newest-first. A non-empty status narrows the
// result in-process; the same rows come back regardless of how often the
// filter is applied.
func (s *registrationService) List(ctx context.Context, status string, limit, offset int) ([]*models.BusinessRegistration, error) {
	if status != "" && !models.ValidRegistrationStatuses[status] {
		return nil, fmt.Errorf("invalid registration status: %s", status)
	}

	registrations, err := s.registrationRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return registrations, nil
	}

	filtered := make([]*models.BusinessRegistration, 0, len(registrations))
	for _, reg := range registrations {
		if reg.Status == status {
			filtered = append(filtered, reg)
		}
	}
	return filtered, nil
}

func (s *registrationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, reviewerID uuid.UUID, notes *string) error {
	if !models.ValidRegistrationStatuses[status] {
		return fmt.Errorf("invalid registration status: %s", status)
	}

	registration, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("registration not found: %w", err)
	}

	if err := s.registrationRepo.UpdateStatus(ctx, id, status, reviewerID, notes); err != nil {
		return err
	}

	registration.Status = status
	s.publish(ctx, "registration_status_changed", registration)
	return nil
}

func (s *registrationService) publish(ctx context.Context, eventType string, registration *models.BusinessRegistration) {
	event := RegistrationEvent{
		Type:            eventType,
		RegistrationID:  registration.ID,
		ReferenceNumber: registration.ReferenceNumber,
		Status:          registration.Status,
		OccurredAt:      time.Now(),
	}
	if err := s.cacheSvc.PublishEvent(ctx, "registrations", event); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
