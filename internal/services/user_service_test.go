package services

import (
	"context"
	"errors"
	"testing"

	"bizboost/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceTestSuite struct {
	suite.Suite
	userRepo     *MockUserRepository
	userRoleRepo *MockUserRoleRepository
	service      UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.userRepo = &MockUserRepository{}
	suite.userRoleRepo = &MockUserRoleRepository{}
	suite.service = NewUserService(suite.userRepo, suite.userRoleRepo)

	suite.userRepo.Test(suite.T())
	suite.userRoleRepo.Test(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (suite *UserServiceTestSuite) TestSignup_GrantsParticipantRole() {
	suite.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		hashed := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cretpass")) == nil
		return u.Email == "thandi@example.com" && hashed
	})).Return(nil)
	suite.userRoleRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.UserRole) bool {
		return r.Role == models.RoleParticipant
	})).Return(nil)

	user, err := suite.service.Signup(context.Background(), &SignupRequest{
		Email:    "Thandi@Example.com",
		Password: "s3cretpass",
		FullName: "Thandi Mokoena",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "thandi@example.com", user.Email)
	suite.userRoleRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestSignup_Rejections() {
	ctx := context.Background()

	_, err := suite.service.Signup(ctx, &SignupRequest{Email: "bad", Password: "s3cretpass", FullName: "X"})
	assert.Error(suite.T(), err, "malformed email")

	_, err = suite.service.Signup(ctx, &SignupRequest{Email: "a@b.co", Password: "short", FullName: "X"})
	assert.Error(suite.T(), err, "password too short")

	_, err = suite.service.Signup(ctx, &SignupRequest{Email: "a@b.co", Password: "s3cretpass", FullName: " "})
	assert.Error(suite.T(), err, "blank name")

	_, err = suite.service.Signup(ctx, &SignupRequest{
		Email: "a@b.co", Password: "s3cretpass", FullName: "X", MobileNumber: "12345",
	})
	assert.Error(suite.T(), err, "invalid mobile")
}

func (suite *UserServiceTestSuite) TestLogin_Success() {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	assert.NoError(suite.T(), err)
	suite.userRepo.On("GetByEmail", mock.Anything, "thandi@example.com").Return(&models.User{
		ID: uuid.New(), Email: "thandi@example.com", PasswordHash: string(hash),
	}, nil)

	user, err := suite.service.Login(context.Background(), "Thandi@Example.com", "s3cretpass")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "thandi@example.com", user.Email)
}

func (suite *UserServiceTestSuite) TestLogin_UniformFailureMessage() {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	assert.NoError(suite.T(), err)
	suite.userRepo.On("GetByEmail", mock.Anything, "thandi@example.com").Return(&models.User{
		PasswordHash: string(hash),
	}, nil)
	suite.userRepo.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, errors.New("no rows"))

	_, wrongPassword := suite.service.Login(context.Background(), "thandi@example.com", "wrong")
	_, unknownEmail := suite.service.Login(context.Background(), "unknown@example.com", "s3cretpass")

	// Neither failure reveals whether the account exists.
	assert.EqualError(suite.T(), wrongPassword, "invalid email or password")
	assert.EqualError(suite.T(), unknownEmail, "invalid email or password")
}

func (suite *UserServiceTestSuite) TestUpdateProfile() {
	id := uuid.New()
	suite.userRepo.On("GetByID", mock.Anything, id).Return(&models.User{
		ID: id, FullName: "Old Name", MobileNumber: "0821234567",
	}, nil)
	suite.userRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	user, err := suite.service.UpdateProfile(context.Background(), id, "New Name", "")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Name", user.FullName)
	assert.Equal(suite.T(), "0821234567", user.MobileNumber)
}

func (suite *UserServiceTestSuite) TestUpdateProfile_InvalidMobileRejected() {
	id := uuid.New()
	suite.userRepo.On("GetByID", mock.Anything, id).Return(&models.User{ID: id}, nil)

	_, err := suite.service.UpdateProfile(context.Background(), id, "", "99999")

	assert.Error(suite.T(), err)
	suite.userRepo.AssertNotCalled(suite.T(), "Update")
}
