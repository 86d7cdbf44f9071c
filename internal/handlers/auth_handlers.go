package handlers

import (
	"net/http"
	"strings"
	"time"

	"bizboost/internal/caching"
	"bizboost/internal/common"
	"bizboost/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles signup, login, token lifecycle, and the session
// bootstrap endpoint.
type AuthHandlers struct {
	userSvc    services.UserService
	authSvc    services.AuthService
	sessionSvc services.SessionService
	cacheSvc   caching.CacheService
	devBypass  bool
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(userSvc services.UserService, authSvc services.AuthService, sessionSvc services.SessionService, cacheSvc caching.CacheService, devBypass bool) *AuthHandlers {
	return &AuthHandlers{
		userSvc:    userSvc,
		authSvc:    authSvc,
		sessionSvc: sessionSvc,
		cacheSvc:   cacheSvc,
		devBypass:  devBypass,
	}
}

// Signup handles account creation
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userSvc.Signup(ctx, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tokens, err := h.authSvc.GenerateTokens(ctx, user.ID, services.ClassifyEmail(user.Email))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue tokens")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"user":   user,
		"tokens": tokens,
	})
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles credential authentication
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	// Attempts count per email, successful or not. The counter expires on
	// its own; there is no explicit reset on success.
	limited, err := h.cacheSvc.IsRateLimited(ctx, "login:"+strings.ToLower(req.Email), 5, 15*time.Minute)
	if err == nil && limited {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts, try again later")
	}

	user, err := h.userSvc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	tokens, err := h.authSvc.GenerateTokens(ctx, user.ID, services.ClassifyEmail(user.Email))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue tokens")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":   user,
		"tokens": tokens,
	})
}

// RefreshRequest represents the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh token into a new token pair
func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tokens, err := h.authSvc.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}

	return c.JSON(http.StatusOK, tokens)
}

// LogoutRequest represents the logout payload
type LogoutRequest struct {
	Token     string  `json:"token"`
	TokenType *string `json:"token_type,omitempty"`
}

// Logout revokes the presented token
func (h *AuthHandlers) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.authSvc.RevokeToken(c.Request().Context(), req.Token, req.TokenType); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to revoke token")
	}

	return c.NoContent(http.StatusNoContent)
}

// Session resolves the authenticated user's bootstrap state. A failed or
// slow role lookup degrades to fallback roles instead of failing the call.
func (h *AuthHandlers) Session(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	state, err := h.sessionSvc.Resolve(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Session could not be resolved")
	}

	return c.JSON(http.StatusOK, state)
}

// DevSessionRequest represents the developer bypass payload
type DevSessionRequest struct {
	Email string `json:"email"`
}

// DevSession synthesizes an identity without touching the database. Only
// mounted when the dev bypass flag is enabled.
func (h *AuthHandlers) DevSession(c echo.Context) error {
	if !h.devBypass {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	var req DevSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateEmail(req.Email); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state := h.sessionSvc.DevSession(req.Email)

	tokens, err := h.authSvc.GenerateTokens(c.Request().Context(), state.User.ID, state.UserType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue tokens")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session": state,
		"tokens":  tokens,
	})
}
