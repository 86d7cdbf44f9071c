package services

import (
	"context"
	"log"
	"strings"
	"time"

	"bizboost/internal/caching"
	"bizboost/internal/models"
	"bizboost/internal/repositories"

	"github.com/google/uuid"
)

// Session resolution budgets. The role fetch gets its own timeout inside the
// overall budget, and the hard ceiling bounds the whole resolution so a
// caller is never left waiting on a spinner.
const (
	DefaultSessionTimeout = 5 * time.Second
	DefaultRoleTimeout    = 3 * time.Second
	DefaultHardCeiling    = 6 * time.Second
)

// Organizational domains whose addresses classify as admin. A bare
// "admin" substring anywhere in the address does too. This is a display
// hint only; RBAC middleware checks the user_roles table for real access.
var adminDomains = []string{"@bizboost.co.za", "@seda.org.za"}

// ClassifyEmail derives the coarse user type from an email address.
func ClassifyEmail(email string) string {
	lower := strings.ToLower(email)
	if strings.Contains(lower, "admin") {
		return "admin"
	}
	for _, domain := range adminDomains {
		if strings.HasSuffix(lower, domain) {
			return "admin"
		}
	}
	return "participant"
}

// FallbackRoles synthesizes the role set used when the role fetch fails,
// times out, or returns no rows.
func FallbackRoles(userType string) []string {
	if userType == "admin" {
		return []string{models.RoleAdmin}
	}
	return []string{models.RoleParticipant}
}

// SessionState is the resolved {user, userType, roles} tuple consumed by
// clients on bootstrap.
type SessionState struct {
	User     *models.User `json:"user"`
	UserType string       `json:"user_type"`
	Roles    []string     `json:"roles"`
	Fallback bool         `json:"fallback,omitempty"` // roles are synthesized, not fetched
}

type SessionService interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*SessionState, error)
	DevSession(email string) *SessionState
}

type sessionService struct {
	userRepo     repositories.UserRepository
	userRoleRepo repositories.UserRoleRepository
	cacheSvc     caching.CacheService

	sessionTimeout time.Duration
	roleTimeout    time.Duration
	hardCeiling    time.Duration
}

func NewSessionService(userRepo repositories.UserRepository, userRoleRepo repositories.UserRoleRepository, cacheSvc caching.CacheService) SessionService {
	return &sessionService{
		userRepo:       userRepo,
		userRoleRepo:   userRoleRepo,
		cacheSvc:       cacheSvc,
		sessionTimeout: DefaultSessionTimeout,
		roleTimeout:    DefaultRoleTimeout,
		hardCeiling:    DefaultHardCeiling,
	}
}

// NewSessionServiceWithBudgets exists so tests can shrink the timeouts.
func NewSessionServiceWithBudgets(userRepo repositories.UserRepository, userRoleRepo repositories.UserRoleRepository, cacheSvc caching.CacheService, sessionTimeout, roleTimeout, hardCeiling time.Duration) SessionService {
	return &sessionService{
		userRepo:       userRepo,
		userRoleRepo:   userRoleRepo,
		cacheSvc:       cacheSvc,
		sessionTimeout: sessionTimeout,
		roleTimeout:    roleTimeout,
		hardCeiling:    hardCeiling,
	}
}

// Resolve produces the session state for a user. The user fetch runs under
// the session budget and the role fetch under its own budget; both are
// cancelled (not merely abandoned) when their deadline passes. Resolution
// always terminates within the hard ceiling: on any failure the user is
// treated as unauthenticated or given fallback roles rather than retried.
func (s *sessionService) Resolve(ctx context.Context, userID uuid.UUID) (*SessionState, error) {
	ctx, cancel := context.WithTimeout(ctx, s.hardCeiling)
	defer cancel()

	userCtx, userCancel := context.WithTimeout(ctx, s.sessionTimeout)
	user, err := s.fetchUser(userCtx, userID)
	userCancel()
	if err != nil {
		// Timeout or error: unauthenticated, not retried.
		return nil, err
	}

	userType := ClassifyEmail(user.Email)

	state := &SessionState{
		User:     user,
		UserType: userType,
	}

	roleCtx, roleCancel := context.WithTimeout(ctx, s.roleTimeout)
	roles, err := s.fetchRoles(roleCtx, userID)
	roleCancel()
	if err != nil || len(roles) == 0 {
		if err != nil {
			log.Printf("Role fetch failed for %s, using fallback: %v", userID, err)
		}
		state.Roles = FallbackRoles(userType)
		state.Fallback = true
	} else {
		state.Roles = roles
	}

	// Best-effort cache for reload survival; resolution already succeeded.
	if err := s.cacheSvc.SetJSON(ctx, "session:"+userID.String(), state, 24*time.Hour); err != nil {
		log.Printf("Failed to cache session state: %v", err)
	}

	return state, nil
}

// fetchUser runs the repository call in a goroutine so a hung connection
// cannot outlive the context deadline from the caller's perspective.
func (s *sessionService) fetchUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	type result struct {
		user *models.User
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		user, err := s.userRepo.GetByID(ctx, userID)
		ch <- result{user, err}
	}()

	select {
	case r := <-ch:
		return r.user, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *sessionService) fetchRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	type result struct {
		roles []string
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		rows, err := s.userRoleRepo.ListByUserID(ctx, userID)
		if err != nil {
			ch <- result{nil, err}
			return
		}
		roles := make([]string, 0, len(rows))
		for _, row := range rows {
			roles = append(roles, row.Role)
		}
		ch <- result{roles, nil}
	}()

	select {
	case r := <-ch:
		return r.roles, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// DevSession synthesizes a fabricated identity for the developer bypass.
// No network or database call is made.
func (s *sessionService) DevSession(email string) *SessionState {
	userType := ClassifyEmail(email)
	return &SessionState{
		User: &models.User{
			ID:        uuid.New(),
			Email:     email,
			FullName:  "Developer",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserType: userType,
		Roles:    FallbackRoles(userType),
		Fallback: true,
	}
}
