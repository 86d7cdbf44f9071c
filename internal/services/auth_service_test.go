package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	cache   *memCache
	service AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.cache = newMemCache()
	suite.service = NewAuthService(suite.cache, "test-secret", 3600, 7*24*3600)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) TestGenerateAndValidate() {
	userID := uuid.New()

	tokens, err := suite.service.GenerateTokens(context.Background(), userID, "admin")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Bearer", tokens.TokenType)
	assert.Equal(suite.T(), 3600, tokens.ExpiresIn)
	assert.NotEmpty(suite.T(), tokens.RefreshToken)

	claims, err := suite.service.ValidateToken(context.Background(), tokens.AccessToken)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), userID.String(), claims.UserID)
	assert.Equal(suite.T(), "admin", claims.UserType)
	assert.Equal(suite.T(), tokens.TokenID, claims.TokenID)
}

func (suite *AuthServiceTestSuite) TestValidate_WrongSecretRejected() {
	tokens, err := suite.service.GenerateTokens(context.Background(), uuid.New(), "participant")
	assert.NoError(suite.T(), err)

	other := NewAuthService(suite.cache, "different-secret", 3600, 7*24*3600)
	_, err = other.ValidateToken(context.Background(), tokens.AccessToken)
	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestRefresh_RotatesToken() {
	ctx := context.Background()
	userID := uuid.New()

	tokens, err := suite.service.GenerateTokens(ctx, userID, "participant")
	assert.NoError(suite.T(), err)

	refreshed, err := suite.service.RefreshToken(ctx, tokens.RefreshToken)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), userID.String(), refreshed.UserID)
	assert.NotEqual(suite.T(), tokens.RefreshToken, refreshed.RefreshToken)

	// The consumed refresh token is gone.
	_, err = suite.service.RefreshToken(ctx, tokens.RefreshToken)
	assert.Error(suite.T(), err)

	// The rotated one still works.
	_, err = suite.service.RefreshToken(ctx, refreshed.RefreshToken)
	assert.NoError(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestRefresh_UnknownTokenRejected() {
	_, err := suite.service.RefreshToken(context.Background(), "never-issued")
	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestRevoke_BlacklistsAccessToken() {
	ctx := context.Background()
	tokens, err := suite.service.GenerateTokens(ctx, uuid.New(), "admin")
	assert.NoError(suite.T(), err)

	assert.NoError(suite.T(), suite.service.RevokeToken(ctx, tokens.AccessToken, nil))

	_, err = suite.service.ValidateToken(ctx, tokens.AccessToken)
	assert.ErrorContains(suite.T(), err, "revoked")
}

func (suite *AuthServiceTestSuite) TestRevoke_RefreshToken() {
	ctx := context.Background()
	tokens, err := suite.service.GenerateTokens(ctx, uuid.New(), "admin")
	assert.NoError(suite.T(), err)

	tokenType := "refresh_token"
	assert.NoError(suite.T(), suite.service.RevokeToken(ctx, tokens.RefreshToken, &tokenType))

	_, err = suite.service.RefreshToken(ctx, tokens.RefreshToken)
	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestTokenExpiryClaim() {
	tokens, err := suite.service.GenerateTokens(context.Background(), uuid.New(), "admin")
	assert.NoError(suite.T(), err)

	claims, err := suite.service.ValidateToken(context.Background(), tokens.AccessToken)
	assert.NoError(suite.T(), err)
	assert.WithinDuration(suite.T(), time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}
