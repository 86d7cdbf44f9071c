package services

import (
	"context"
	"fmt"
	"strings"

	"bizboost/internal/common"
	"bizboost/internal/models"
	"bizboost/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SignupRequest carries the credential and profile fields for account
// creation.
type SignupRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	MobileNumber string `json:"mobile_number"`
}

type UserService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, fullName, mobileNumber string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

type userService struct {
	userRepo     repositories.UserRepository
	userRoleRepo repositories.UserRoleRepository
}

func NewUserService(userRepo repositories.UserRepository, userRoleRepo repositories.UserRoleRepository) UserService {
	return &userService{
		userRepo:     userRepo,
		userRoleRepo: userRoleRepo,
	}
}

// Signup creates an account and grants the baseline participant role.
// Admin roles are only ever assigned explicitly by an existing admin.
func (s *userService) Signup(ctx context.Context, req *SignupRequest) (*models.User, error) {
	if err := common.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if err := common.ValidateRequiredString(req.FullName, "full_name"); err != nil {
		return nil, err
	}
	if req.MobileNumber != "" {
		if err := common.ValidateSAMobile(req.MobileNumber); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		FullName:     req.FullName,
		MobileNumber: req.MobileNumber,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.userRoleRepo.Create(ctx, &models.UserRole{
		ID:     uuid.New(),
		UserID: user.ID,
		Role:   models.RoleParticipant,
	}); err != nil {
		return nil, fmt.Errorf("failed to assign participant role: %w", err)
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, fullName, mobileNumber string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if fullName != "" {
		user.FullName = fullName
	}
	if mobileNumber != "" {
		if err := common.ValidateSAMobile(mobileNumber); err != nil {
			return nil, err
		}
		user.MobileNumber = mobileNumber
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}
