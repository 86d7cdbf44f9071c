package middleware

import (
	"net/http"

	"bizboost/internal/common"
	"bizboost/internal/services"

	"github.com/labstack/echo/v4"
)

type RBACMiddleware struct {
	rbacService services.RBACService
}

func NewRBACMiddleware(rbacService services.RBACService) *RBACMiddleware {
	return &RBACMiddleware{
		rbacService: rbacService,
	}
}

// RequireRole gates a route on one exact role from the user_roles table.
func (m *RBACMiddleware) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			hasRole, err := m.rbacService.UserHasRole(ctx, userID, role)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Error checking role")
			}
			if !hasRole {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}

			return next(c)
		}
	}
}

// RequireAdmin gates the dashboard routes on any admin-tier role. The
// user type classified from the email never grants access here.
func (m *RBACMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			isAdmin, err := m.rbacService.UserHasAnyAdminRole(ctx, userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Error checking role")
			}
			if !isAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}

			return next(c)
		}
	}
}
