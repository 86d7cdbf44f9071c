package services

import (
	"context"
	"fmt"
	"time"

	"bizboost/internal/common"
	"bizboost/internal/models"
	"bizboost/internal/repositories"

	"github.com/google/uuid"
)

// EnrollmentService backs the participant portal: enrollments with their
// progress, plus the events and materials of enrolled programs.
type EnrollmentService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramEnrollment, error)
	ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramEnrollment, error)
	ListByParticipantID(ctx context.Context, participantID uuid.UUID) ([]*models.ProgramEnrollment, error)
	UpdateCompletion(ctx context.Context, id uuid.UUID, completionPercentage int) error

	CreateEvent(ctx context.Context, programID uuid.UUID, title, description string, eventDate time.Time, location string) (*models.ProgramEvent, error)
	ListEvents(ctx context.Context, programID uuid.UUID) ([]*models.ProgramEvent, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	CreateMaterial(ctx context.Context, programID uuid.UUID, title, materialType, fileURL string) (*models.ProgramMaterial, error)
	ListMaterials(ctx context.Context, programID uuid.UUID) ([]*models.ProgramMaterial, error)
	DeleteMaterial(ctx context.Context, id uuid.UUID) error
}

type enrollmentService struct {
	enrollmentRepo repositories.EnrollmentRepository
	eventRepo      repositories.ProgramEventRepository
	materialRepo   repositories.ProgramMaterialRepository
}

func NewEnrollmentService(enrollmentRepo repositories.EnrollmentRepository, eventRepo repositories.ProgramEventRepository, materialRepo repositories.ProgramMaterialRepository) EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		eventRepo:      eventRepo,
		materialRepo:   materialRepo,
	}
}

func (s *enrollmentService) GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramEnrollment, error) {
	return s.enrollmentRepo.GetByID(ctx, id)
}

func (s *enrollmentService) ListByProgramID(ctx context.Context, programID uuid.UUID) ([]*models.ProgramEnrollment, error) {
	return s.enrollmentRepo.ListByProgramID(ctx, programID)
}

func (s *enrollmentService) ListByParticipantID(ctx context.Context, participantID uuid.UUID) ([]*models.ProgramEnrollment, error) {
	return s.enrollmentRepo.ListByParticipantID(ctx, participantID)
}

func (s *enrollmentService) UpdateCompletion(ctx context.Context, id uuid.UUID, completionPercentage int) error {
	if completionPercentage < 0 || completionPercentage > 100 {
		return fmt.Errorf("completion percentage must be between 0 and 100")
	}
	if _, err := s.enrollmentRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("enrollment not found: %w", err)
	}
	return s.enrollmentRepo.UpdateCompletion(ctx, id, completionPercentage)
}

func (s *enrollmentService) CreateEvent(ctx context.Context, programID uuid.UUID, title, description string, eventDate time.Time, location string) (*models.ProgramEvent, error) {
	if err := common.ValidateRequiredString(title, "title"); err != nil {
		return nil, err
	}
	event := &models.ProgramEvent{
		ID:          uuid.New(),
		ProgramID:   programID,
		Title:       title,
		Description: description,
		EventDate:   eventDate,
		Location:    location,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *enrollmentService) ListEvents(ctx context.Context, programID uuid.UUID) ([]*models.ProgramEvent, error) {
	return s.eventRepo.ListByProgramID(ctx, programID)
}

func (s *enrollmentService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.eventRepo.Delete(ctx, id)
}

func (s *enrollmentService) CreateMaterial(ctx context.Context, programID uuid.UUID, title, materialType, fileURL string) (*models.ProgramMaterial, error) {
	if err := common.ValidateRequiredString(title, "title"); err != nil {
		return nil, err
	}
	material := &models.ProgramMaterial{
		ID:           uuid.New(),
		ProgramID:    programID,
		Title:        title,
		MaterialType: materialType,
		FileURL:      fileURL,
	}
	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *enrollmentService) ListMaterials(ctx context.Context, programID uuid.UUID) ([]*models.ProgramMaterial, error) {
	return s.materialRepo.ListByProgramID(ctx, programID)
}

func (s *enrollmentService) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	return s.materialRepo.Delete(ctx, id)
}
