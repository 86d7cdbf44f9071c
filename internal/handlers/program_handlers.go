package handlers

import (
	"net/http"

	"bizboost/internal/common"
	"bizboost/internal/models"
	"bizboost/internal/services"

	"github.com/labstack/echo/v4"
)

// ProgramHandlers handles program management and the per-program form
// schema endpoints.
type ProgramHandlers struct {
	programSvc services.ProgramService
	formSvc    services.FormService
}

// NewProgramHandlers creates a new program handlers instance
func NewProgramHandlers(programSvc services.ProgramService, formSvc services.FormService) *ProgramHandlers {
	return &ProgramHandlers{
		programSvc: programSvc,
		formSvc:    formSvc,
	}
}

// Create handles creating a new program
func (h *ProgramHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	createdBy, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req services.CreateProgramRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	program, err := h.programSvc.Create(ctx, &req, createdBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, program)
}

// ListProgramsRequest represents query parameters for listing programs
type ListProgramsRequest struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// List handles getting a list of programs
func (h *ProgramHandlers) List(c echo.Context) error {
	var req ListProgramsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	req.Limit, req.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	programs, err := h.programSvc.List(c.Request().Context(), req.Status, req.Limit, req.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"programs": programs,
		"limit":    req.Limit,
		"offset":   req.Offset,
	})
}

// Get returns one program
func (h *ProgramHandlers) Get(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "program_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	program, err := h.programSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Program")
	}

	return c.JSON(http.StatusOK, program)
}

// Update modifies a program
func (h *ProgramHandlers) Update(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "program_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req services.CreateProgramRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	program, err := h.programSvc.Update(c.Request().Context(), id, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, program)
}

// Delete removes a program
func (h *ProgramHandlers) Delete(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "program_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.programSvc.Delete(c.Request().Context(), id); err != nil {
		return common.SendServerError(c, "Failed to delete program")
	}

	return c.NoContent(http.StatusNoContent)
}

// GenerateLink mints a fresh public application link token
func (h *ProgramHandlers) GenerateLink(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "program_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	linkID, err := h.programSvc.GenerateApplicationLink(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"application_link_id": linkID,
		"apply_path":          "/v1/apply/" + linkID,
	})
}

// Stats returns the dashboard counts for one program
func (h *ProgramHandlers) Stats(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "program_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	stats, err := h.programSvc.GetStats(c.Request().Context(), id)
	if err != nil {
		return common.SendServerError(c, "Failed to load program stats")
	}

	return c.JSON(http.StatusOK, stats)
}

// CreateFormRequest represents the form schema payload
type CreateFormRequest struct {
	Fields []models.FormField `json:"fields"`
}

// CreateForm stores a new application form schema for a program
func (h *ProgramHandlers) CreateForm(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "program_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req CreateFormRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	form, err := h.formSvc.CreateForm(c.Request().Context(), id, req.Fields)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, form)
}

// GetForm returns the active form schema for a program
func (h *ProgramHandlers) GetForm(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "program_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	form, err := h.formSvc.GetActiveForm(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Application form")
	}

	return c.JSON(http.StatusOK, form)
}
