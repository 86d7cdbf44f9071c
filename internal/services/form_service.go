package services

import (
	"context"
	"fmt"

	"bizboost/internal/common"
	"bizboost/internal/models"
	"bizboost/internal/repositories"

	"github.com/google/uuid"
)

// FormService manages the per-program application form schema and validates
// public submissions against it.
type FormService interface {
	CreateForm(ctx context.Context, programID uuid.UUID, fields []models.FormField) (*models.ApplicationForm, error)
	GetActiveForm(ctx context.Context, programID uuid.UUID) (*models.ApplicationForm, error)
	ValidateSubmission(form *models.ApplicationForm, values map[string]any) error
}

type formService struct {
	formRepo repositories.ApplicationFormRepository
}

func NewFormService(formRepo repositories.ApplicationFormRepository) FormService {
	return &formService{formRepo: formRepo}
}

// CreateForm stores a new field schema and deactivates any previous one,
// keeping at most one active form per program.
func (s *formService) CreateForm(ctx context.Context, programID uuid.UUID, fields []models.FormField) (*models.ApplicationForm, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("form must have at least one field")
	}
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		if field.ID == "" {
			return nil, fmt.Errorf("form field missing id")
		}
		if seen[field.ID] {
			return nil, fmt.Errorf("duplicate form field id: %s", field.ID)
		}
		seen[field.ID] = true
		if field.Type == models.FieldTypeSelect && len(field.Options) == 0 {
			return nil, fmt.Errorf("select field %s has no options", field.ID)
		}
	}

	if err := s.formRepo.Deactivate(ctx, programID); err != nil {
		return nil, fmt.Errorf("failed to deactivate previous form: %w", err)
	}

	form := &models.ApplicationForm{
		ID:        uuid.New(),
		ProgramID: programID,
		Fields:    fields,
		IsActive:  true,
	}
	if err := s.formRepo.Create(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *formService) GetActiveForm(ctx context.Context, programID uuid.UUID) (*models.ApplicationForm, error) {
	return s.formRepo.GetActiveByProgramID(ctx, programID)
}

// ValidateSubmission checks submitted values against the form schema.
// Dispatch is exhaustive over the known field types; a field with an
// unknown type is skipped, never rejected, so schema additions do not
// break in-flight forms.
func (s *formService) ValidateSubmission(form *models.ApplicationForm, values map[string]any) error {
	for _, field := range form.Fields {
		raw, present := values[field.ID]
		str, _ := raw.(string)

		switch field.Type {
		case models.FieldTypeText, models.FieldTypeTextarea, models.FieldTypeTel:
			if field.Required && (!present || str == "") {
				return fmt.Errorf("field %q is required", field.Label)
			}
		case models.FieldTypeEmail:
			if field.Required && (!present || str == "") {
				return fmt.Errorf("field %q is required", field.Label)
			}
			if str != "" {
				if err := common.ValidateEmail(str); err != nil {
					return fmt.Errorf("field %q: %w", field.Label, err)
				}
			}
		case models.FieldTypeSelect:
			if field.Required && (!present || str == "") {
				return fmt.Errorf("field %q is required", field.Label)
			}
			if str != "" && !containsOption(field.Options, str) {
				return fmt.Errorf("field %q: %q is not an allowed option", field.Label, str)
			}
		case models.FieldTypeFile:
			// File presence is enforced by the upload step, not here.
		default:
			// Unknown type: skip.
		}
	}
	return nil
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
