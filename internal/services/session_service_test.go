package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"bizboost/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func TestClassifyEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"admin@example.com", "admin"},
		{"site.administrator@example.com", "admin"},
		{"thandi@bizboost.co.za", "admin"},
		{"sipho@seda.org.za", "admin"},
		{"ADMIN@EXAMPLE.COM", "admin"},
		{"Thandi@BizBoost.co.za", "admin"},
		{"jane@example.com", "participant"},
		{"bizboost.co.za@gmail.com", "participant"},
		{"", "participant"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyEmail(tt.email), "email: %s", tt.email)
	}
}

func TestFallbackRoles(t *testing.T) {
	assert.Equal(t, []string{models.RoleAdmin}, FallbackRoles("admin"))
	assert.Equal(t, []string{models.RoleParticipant}, FallbackRoles("participant"))
	assert.Equal(t, []string{models.RoleParticipant}, FallbackRoles("anything-else"))
}

type SessionServiceTestSuite struct {
	suite.Suite
	userRepo *MockUserRepository
	roleRepo *MockUserRoleRepository
	cache    *memCache
	service  SessionService
	userID   uuid.UUID
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.userRepo = &MockUserRepository{}
	suite.roleRepo = &MockUserRoleRepository{}
	suite.cache = newMemCache()
	suite.service = NewSessionService(suite.userRepo, suite.roleRepo, suite.cache)
	suite.userID = uuid.New()

	suite.userRepo.Test(suite.T())
	suite.roleRepo.Test(suite.T())
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func (suite *SessionServiceTestSuite) user(email string) *models.User {
	return &models.User{
		ID:    suite.userID,
		Email: email,
	}
}

func (suite *SessionServiceTestSuite) TestResolve_RolesFromTable() {
	suite.userRepo.On("GetByID", mock.Anything, suite.userID).Return(suite.user("jane@example.com"), nil)
	suite.roleRepo.On("ListByUserID", mock.Anything, suite.userID).Return([]*models.UserRole{
		{UserID: suite.userID, Role: models.RoleProgramManager},
	}, nil)

	state, err := suite.service.Resolve(context.Background(), suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "participant", state.UserType)
	assert.Equal(suite.T(), []string{models.RoleProgramManager}, state.Roles)
	assert.False(suite.T(), state.Fallback)
}

func (suite *SessionServiceTestSuite) TestResolve_RoleFetchErrorUsesFallback() {
	suite.userRepo.On("GetByID", mock.Anything, suite.userID).Return(suite.user("admin@example.com"), nil)
	suite.roleRepo.On("ListByUserID", mock.Anything, suite.userID).Return(nil, errors.New("connection refused"))

	state, err := suite.service.Resolve(context.Background(), suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "admin", state.UserType)
	assert.Equal(suite.T(), []string{models.RoleAdmin}, state.Roles)
	assert.True(suite.T(), state.Fallback)
}

func (suite *SessionServiceTestSuite) TestResolve_EmptyRolesUsesFallback() {
	suite.userRepo.On("GetByID", mock.Anything, suite.userID).Return(suite.user("jane@example.com"), nil)
	suite.roleRepo.On("ListByUserID", mock.Anything, suite.userID).Return([]*models.UserRole{}, nil)

	state, err := suite.service.Resolve(context.Background(), suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{models.RoleParticipant}, state.Roles)
	assert.True(suite.T(), state.Fallback)
}

func (suite *SessionServiceTestSuite) TestResolve_UserFetchErrorFails() {
	suite.userRepo.On("GetByID", mock.Anything, suite.userID).Return(nil, errors.New("no rows"))

	state, err := suite.service.Resolve(context.Background(), suite.userID)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), state)
}

func (suite *SessionServiceTestSuite) TestResolve_HungRoleFetchDegradesWithinBudget() {
	service := NewSessionServiceWithBudgets(suite.userRepo, suite.roleRepo, suite.cache,
		200*time.Millisecond, 50*time.Millisecond, 300*time.Millisecond)

	suite.userRepo.On("GetByID", mock.Anything, suite.userID).Return(suite.user("jane@example.com"), nil)
	suite.roleRepo.On("ListByUserID", mock.Anything, suite.userID).Return([]*models.UserRole{}, nil).
		After(2 * time.Second)

	start := time.Now()
	state, err := service.Resolve(context.Background(), suite.userID)
	elapsed := time.Since(start)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), state.Fallback)
	assert.Equal(suite.T(), []string{models.RoleParticipant}, state.Roles)
	assert.Less(suite.T(), elapsed, 300*time.Millisecond)
}

func (suite *SessionServiceTestSuite) TestResolve_HungUserFetchFailsWithinCeiling() {
	service := NewSessionServiceWithBudgets(suite.userRepo, suite.roleRepo, suite.cache,
		50*time.Millisecond, 50*time.Millisecond, 100*time.Millisecond)

	suite.userRepo.On("GetByID", mock.Anything, suite.userID).Return(nil, errors.New("slow")).
		After(2 * time.Second)

	start := time.Now()
	state, err := service.Resolve(context.Background(), suite.userID)
	elapsed := time.Since(start)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), state)
	assert.Less(suite.T(), elapsed, 1*time.Second)
}

func (suite *SessionServiceTestSuite) TestResolve_CachesState() {
	suite.userRepo.On("GetByID", mock.Anything, suite.userID).Return(suite.user("jane@example.com"), nil)
	suite.roleRepo.On("ListByUserID", mock.Anything, suite.userID).Return([]*models.UserRole{
		{UserID: suite.userID, Role: models.RoleParticipant},
	}, nil)

	_, err := suite.service.Resolve(context.Background(), suite.userID)
	assert.NoError(suite.T(), err)

	cached := &SessionState{}
	found, err := suite.cache.GetJSON(context.Background(), "session:"+suite.userID.String(), cached)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), "participant", cached.UserType)
}

func (suite *SessionServiceTestSuite) TestDevSession() {
	state := suite.service.DevSession("admin@bizboost.co.za")

	assert.Equal(suite.T(), "admin", state.UserType)
	assert.Equal(suite.T(), []string{models.RoleAdmin}, state.Roles)
	assert.True(suite.T(), state.Fallback)
	assert.NotEqual(suite.T(), uuid.Nil, state.User.ID)
}
