package handlers

import (
	"net/http"

	"bizboost/internal/common"
	"bizboost/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles the authenticated user's profile endpoints.
type UserHandlers struct {
	userSvc services.UserService
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(userSvc services.UserService) *UserHandlers {
	return &UserHandlers{userSvc: userSvc}
}

// Profile returns the authenticated user's profile
func (h *UserHandlers) Profile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userSvc.GetByID(ctx, userID)
	if err != nil {
		return common.SendNotFoundError(c, "User")
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfileRequest represents the profile update payload
type UpdateProfileRequest struct {
	FullName     string `json:"full_name"`
	MobileNumber string `json:"mobile_number"`
}

// UpdateProfile modifies the authenticated user's profile
func (h *UserHandlers) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userSvc.UpdateProfile(ctx, userID, req.FullName, req.MobileNumber)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}
