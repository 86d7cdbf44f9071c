package handlers

import (
	"net/http"

	"bizboost/internal/common"
	"bizboost/internal/models"
	"bizboost/internal/services"

	"github.com/labstack/echo/v4"
)

// AdminHandlers handles the dashboard analytics, settings, exports, and
// role management endpoints.
type AdminHandlers struct {
	analyticsSvc services.AnalyticsService
	settingsSvc  services.SettingsService
	exportSvc    services.ExportService
	userSvc      services.UserService
	rbacSvc      services.RBACService
}

// NewAdminHandlers creates a new admin handlers instance
func NewAdminHandlers(analyticsSvc services.AnalyticsService, settingsSvc services.SettingsService, exportSvc services.ExportService, userSvc services.UserService, rbacSvc services.RBACService) *AdminHandlers {
	return &AdminHandlers{
		analyticsSvc: analyticsSvc,
		settingsSvc:  settingsSvc,
		exportSvc:    exportSvc,
		userSvc:      userSvc,
		rbacSvc:      rbacSvc,
	}
}

// Analytics returns the dashboard aggregates for a time range
func (h *AdminHandlers) Analytics(c echo.Context) error {
	timeRange := c.QueryParam("range")
	if timeRange == "" {
		timeRange = services.TimeRange30Days
	}

	analytics, err := h.analyticsSvc.GetDashboard(c.Request().Context(), timeRange)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, analytics)
}

// GetSettings returns the admin's dashboard preferences
func (h *AdminHandlers) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()

	adminID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	settings, err := h.settingsSvc.Get(ctx, adminID)
	if err != nil {
		return common.SendServerError(c, "Failed to load settings")
	}

	return c.JSON(http.StatusOK, settings)
}

// SaveSettings stores the admin's dashboard preferences
func (h *AdminHandlers) SaveSettings(c echo.Context) error {
	ctx := c.Request().Context()

	adminID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var settings services.AdminSettings
	if err := c.Bind(&settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.settingsSvc.Save(ctx, adminID, &settings); err != nil {
		return common.SendServerError(c, "Failed to save settings")
	}

	return c.JSON(http.StatusOK, &settings)
}

// ExportRegistrations streams the registrations CSV download
func (h *AdminHandlers) ExportRegistrations(c echo.Context) error {
	csv, err := h.exportSvc.RegistrationsCSV(c.Request().Context(), c.QueryParam("status"), 1000, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+services.CSVFilename("registrations"))
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}

// ExportApplications streams the applications CSV download
func (h *AdminHandlers) ExportApplications(c echo.Context) error {
	csv, err := h.exportSvc.ApplicationsCSV(c.Request().Context(), c.QueryParam("status"), 1000, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+services.CSVFilename("applications"))
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}

// ExportUsers streams the users CSV download
func (h *AdminHandlers) ExportUsers(c echo.Context) error {
	csv, err := h.exportSvc.UsersCSV(c.Request().Context(), 1000, 0)
	if err != nil {
		return common.SendServerError(c, "Failed to export users")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+services.CSVFilename("users"))
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}

// ExportPrograms streams the programs CSV download
func (h *AdminHandlers) ExportPrograms(c echo.Context) error {
	csv, err := h.exportSvc.ProgramsCSV(c.Request().Context(), c.QueryParam("status"), 1000, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+services.CSVFilename("programs"))
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}

// ExportAnalytics streams the time series behind the dashboard charts
func (h *AdminHandlers) ExportAnalytics(c echo.Context) error {
	timeRange := c.QueryParam("range")
	if timeRange == "" {
		timeRange = services.TimeRange30Days
	}

	csv, err := h.exportSvc.AnalyticsCSV(c.Request().Context(), timeRange)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+services.CSVFilename("analytics"))
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}

// ListUsers returns accounts for the admin user screen
func (h *AdminHandlers) ListUsers(c echo.Context) error {
	limit, offset := common.ValidatePaginationParams(0, 0)

	users, err := h.userSvc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list users")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"users": users})
}

// GetUser returns one account with its role assignments
func (h *AdminHandlers) GetUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := common.ValidateUUID(c.Param("id"), "user_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userSvc.GetByID(ctx, userID)
	if err != nil {
		return common.SendNotFoundError(c, "User")
	}

	roles, err := h.rbacSvc.RolesForUser(ctx, userID)
	if err != nil {
		return common.SendServerError(c, "Failed to load roles")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":  user,
		"roles": roles,
	})
}

// RoleRequest represents a role assignment payload
type RoleRequest struct {
	Role string `json:"role"`
}

// AssignRole grants a role to a user
func (h *AdminHandlers) AssignRole(c echo.Context) error {
	userID, err := common.ValidateUUID(c.Param("id"), "user_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if !models.ValidRoles[req.Role] {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid role")
	}

	if err := h.rbacSvc.AssignRole(c.Request().Context(), userID, req.Role); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// RemoveRole revokes a role from a user
func (h *AdminHandlers) RemoveRole(c echo.Context) error {
	userID, err := common.ValidateUUID(c.Param("id"), "user_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role := c.Param("role")
	if role == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Role is required")
	}

	if err := h.rbacSvc.RemoveRole(c.Request().Context(), userID, role); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
