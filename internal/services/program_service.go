package services

import (
	"context"
	"fmt"
	"time"

	"bizboost/internal/common"
	"bizboost/internal/models"
	"bizboost/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
	"golang.org/x/sync/errgroup"
)

// CreateProgramRequest carries the admin-supplied program fields.
type CreateProgramRequest struct {
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	Status              string     `json:"status"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	Capacity            int        `json:"capacity"`
}

type ProgramService interface {
	Create(ctx context.Context, req *CreateProgramRequest, createdBy uuid.UUID) (*models.Program, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Program, error)
	GetByLinkID(ctx context.Context, linkID string) (*models.Program, error)
	Update(ctx context.Context, id uuid.UUID, req *CreateProgramRequest) (*models.Program, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, status string, limit, offset int) ([]*models.Program, error)
	GenerateApplicationLink(ctx context.Context, id uuid.UUID) (string, error)
	GetStats(ctx context.Context, id uuid.UUID) (*models.ProgramStats, error)
}

type programService struct {
	programRepo     repositories.ProgramRepository
	applicationRepo repositories.ApplicationRepository
	enrollmentRepo  repositories.EnrollmentRepository
	eventRepo       repositories.ProgramEventRepository
	materialRepo    repositories.ProgramMaterialRepository
}

func NewProgramService(
	programRepo repositories.ProgramRepository,
	applicationRepo repositories.ApplicationRepository,
	enrollmentRepo repositories.EnrollmentRepository,
	eventRepo repositories.ProgramEventRepository,
	materialRepo repositories.ProgramMaterialRepository,
) ProgramService {
	return &programService{
		programRepo:     programRepo,
		applicationRepo: applicationRepo,
		enrollmentRepo:  enrollmentRepo,
		eventRepo:       eventRepo,
		materialRepo:    materialRepo,
	}
}

func (s *programService) Create(ctx context.Context, req *CreateProgramRequest, createdBy uuid.UUID) (*models.Program, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.ProgramStatusDraft
	}
	if !models.ValidProgramStatuses[status] {
		return nil, fmt.Errorf("invalid program status: %s", status)
	}
	if req.Capacity < 0 {
		return nil, fmt.Errorf("capacity cannot be negative")
	}

	program := &models.Program{
		ID:                  uuid.New(),
		Name:                req.Name,
		Description:         req.Description,
		Status:              status,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		ApplicationDeadline: req.ApplicationDeadline,
		Capacity:            req.Capacity,
		CreatedBy:           createdBy,
	}
	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *programService) GetByID(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	return s.programRepo.GetByID(ctx, id)
}

func (s *programService) GetByLinkID(ctx context.Context, linkID string) (*models.Program, error) {
	return s.programRepo.GetByLinkID(ctx, linkID)
}

func (s *programService) Update(ctx context.Context, id uuid.UUID, req *CreateProgramRequest) (*models.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("program not found: %w", err)
	}
	if req.Status != "" && !models.ValidProgramStatuses[req.Status] {
		return nil, fmt.Errorf("invalid program status: %s", req.Status)
	}

	if req.Name != "" {
		program.Name = req.Name
	}
	if req.Description != "" {
		program.Description = req.Description
	}
	if req.Status != "" {
		program.Status = req.Status
	}
	if req.StartDate != nil {
		program.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		program.EndDate = req.EndDate
	}
	if req.ApplicationDeadline != nil {
		program.ApplicationDeadline = req.ApplicationDeadline
	}
	if req.Capacity > 0 {
		program.Capacity = req.Capacity
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *programService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.programRepo.Delete(ctx, id)
}

func (s *programService) List(ctx context.Context, status string, limit, offset int) ([]*models.Program, error) {
	if status != "" {
		if !models.ValidProgramStatuses[status] {
			return nil, fmt.Errorf("invalid program status: %s", status)
		}
		return s.programRepo.ListByStatus(ctx, status)
	}
	return s.programRepo.List(ctx, limit, offset)
}

// GenerateApplicationLink mints the opaque token behind the public apply
// URL. Regenerating replaces the old token, invalidating previously shared
// links.
func (s *programService) GenerateApplicationLink(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.programRepo.GetByID(ctx, id); err != nil {
		return "", fmt.Errorf("program not found: %w", err)
	}

	linkID := random.String(32, random.Alphanumeric)
	if err := s.programRepo.SetApplicationLinkID(ctx, id, linkID); err != nil {
		return "", err
	}
	return linkID, nil
}

// GetStats gathers the four dashboard counts in parallel. Any failed count
// fails the whole call; partial stats are never reported.
func (s *programService) GetStats(ctx context.Context, id uuid.UUID) (*models.ProgramStats, error) {
	stats := &models.ProgramStats{ProgramID: id}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.applicationRepo.CountByProgramID(ctx, id)
		stats.ApplicationCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.enrollmentRepo.CountByProgramID(ctx, id)
		stats.EnrollmentCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.eventRepo.CountByProgramID(ctx, id)
		stats.EventCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.materialRepo.CountByProgramID(ctx, id)
		stats.MaterialCount = count
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load program stats: %w", err)
	}
	return stats, nil
}
