package handlers

import (
	"net/http"

	"bizboost/internal/common"
	"bizboost/internal/services"

	"github.com/labstack/echo/v4"
)

// ApplicationHandlers handles the admin review endpoints for program
// applications.
type ApplicationHandlers struct {
	applicationSvc services.ApplicationService
}

// NewApplicationHandlers creates a new application handlers instance
func NewApplicationHandlers(applicationSvc services.ApplicationService) *ApplicationHandlers {
	return &ApplicationHandlers{applicationSvc: applicationSvc}
}

// ListApplicationsRequest represents query parameters for listing applications
type ListApplicationsRequest struct {
	Status    string `query:"status"`
	ProgramID string `query:"program_id"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

// List returns applications, optionally narrowed to one program
func (h *ApplicationHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListApplicationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	req.Limit, req.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	if req.ProgramID != "" {
		programID, err := common.ValidateUUID(req.ProgramID, "program_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		applications, err := h.applicationSvc.ListByProgramID(ctx, programID)
		if err != nil {
			return common.SendServerError(c, "Failed to list applications")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"applications": applications})
	}

	applications, err := h.applicationSvc.List(ctx, req.Status, req.Limit, req.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"applications": applications,
		"limit":        req.Limit,
		"offset":       req.Offset,
	})
}

// Get returns one application
func (h *ApplicationHandlers) Get(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "application_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	application, err := h.applicationSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Application")
	}

	return c.JSON(http.StatusOK, application)
}

// UpdateStatus records a non-approval review decision
func (h *ApplicationHandlers) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "application_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reviewerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.applicationSvc.UpdateStatus(ctx, id, req.Status, reviewerID, req.Notes); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// ApproveRequest represents the approval payload
type ApproveRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// Approve approves an application and returns the created enrollment
func (h *ApplicationHandlers) Approve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "application_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reviewerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req ApproveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	enrollment, err := h.applicationSvc.Approve(ctx, id, reviewerID, req.Notes)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, enrollment)
}

// Mine lists the authenticated participant's own applications
func (h *ApplicationHandlers) Mine(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	applications, err := h.applicationSvc.ListByApplicantID(ctx, userID)
	if err != nil {
		return common.SendServerError(c, "Failed to list applications")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"applications": applications})
}
