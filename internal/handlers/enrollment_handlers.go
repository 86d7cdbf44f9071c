package handlers

import (
	"net/http"
	"time"

	"bizboost/internal/common"
	"bizboost/internal/services"

	"github.com/labstack/echo/v4"
)

// EnrollmentHandlers handles the participant portal and admin program
// content endpoints.
type EnrollmentHandlers struct {
	enrollmentSvc services.EnrollmentService
}

// NewEnrollmentHandlers creates a new enrollment handlers instance
func NewEnrollmentHandlers(enrollmentSvc services.EnrollmentService) *EnrollmentHandlers {
	return &EnrollmentHandlers{enrollmentSvc: enrollmentSvc}
}

// Mine lists the authenticated participant's enrollments
func (h *EnrollmentHandlers) Mine(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	enrollments, err := h.enrollmentSvc.ListByParticipantID(ctx, userID)
	if err != nil {
		return common.SendServerError(c, "Failed to list enrollments")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"enrollments": enrollments})
}

// ListByProgram lists enrollments under one program
func (h *EnrollmentHandlers) ListByProgram(c echo.Context) error {
	programID, err := common.ValidateUUID(c.Param("id"), "program_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enrollments, err := h.enrollmentSvc.ListByProgramID(c.Request().Context(), programID)
	if err != nil {
		return common.SendServerError(c, "Failed to list enrollments")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"enrollments": enrollments})
}

// UpdateCompletionRequest represents the progress update payload
type UpdateCompletionRequest struct {
	CompletionPercentage int `json:"completion_percentage"`
}

// UpdateCompletion records progress on an enrollment
func (h *EnrollmentHandlers) UpdateCompletion(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "enrollment_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UpdateCompletionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.enrollmentSvc.UpdateCompletion(c.Request().Context(), id, req.CompletionPercentage); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateEventRequest represents the event creation payload
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
}

// CreateEvent adds an event under a program
func (h *EnrollmentHandlers) CreateEvent(c echo.Context) error {
	programID, err := common.ValidateUUID(c.Param("id"), "program_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	event, err := h.enrollmentSvc.CreateEvent(c.Request().Context(), programID, req.Title, req.Description, req.EventDate, req.Location)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, event)
}

// ListEvents lists the events under a program
func (h *EnrollmentHandlers) ListEvents(c echo.Context) error {
	programID, err := common.ValidateUUID(c.Param("id"), "program_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	events, err := h.enrollmentSvc.ListEvents(c.Request().Context(), programID)
	if err != nil {
		return common.SendServerError(c, "Failed to list events")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"events": events})
}

// DeleteEvent removes an event
func (h *EnrollmentHandlers) DeleteEvent(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("eventID"), "event_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.enrollmentSvc.DeleteEvent(c.Request().Context(), id); err != nil {
		return common.SendServerError(c, "Failed to delete event")
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateMaterialRequest represents the material creation payload
type CreateMaterialRequest struct {
	Title        string `json:"title"`
	MaterialType string `json:"material_type"`
	FileURL      string `json:"file_url"`
}

// CreateMaterial adds a material under a program
func (h *EnrollmentHandlers) CreateMaterial(c echo.Context) error {
	programID, err := common.ValidateUUID(c.Param("id"), "program_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req CreateMaterialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	material, err := h.enrollmentSvc.CreateMaterial(c.Request().Context(), programID, req.Title, req.MaterialType, req.FileURL)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, material)
}

// ListMaterials lists the materials under a program
func (h *EnrollmentHandlers) ListMaterials(c echo.Context) error {
	programID, err := common.ValidateUUID(c.Param("id"), "program_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	materials, err := h.enrollmentSvc.ListMaterials(c.Request().Context(), programID)
	if err != nil {
		return common.SendServerError(c, "Failed to list materials")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"materials": materials})
}

// DeleteMaterial removes a material
func (h *EnrollmentHandlers) DeleteMaterial(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("materialID"), "material_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.enrollmentSvc.DeleteMaterial(c.Request().Context(), id); err != nil {
		return common.SendServerError(c, "Failed to delete material")
	}

	return c.NoContent(http.StatusNoContent)
}
