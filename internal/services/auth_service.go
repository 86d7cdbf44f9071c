package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"bizboost/internal/caching"
	"bizboost/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService handles JWT and refresh token management. Refresh tokens are
// opaque, stored hashed in the KV store with their expiry.
type AuthService interface {
	GenerateTokens(ctx context.Context, userID uuid.UUID, userType string) (*models.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	RevokeToken(ctx context.Context, token string, tokenType *string) error
}

type authService struct {
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   int // Access token TTL in seconds
	refreshTTL int // Refresh token TTL in seconds
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
	TokenID  string `json:"token_id"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service
func NewAuthService(cacheSvc caching.CacheService, jwtSecret string, tokenTTLSeconds, refreshTTLSeconds int) AuthService {
	return &authService{
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTLSeconds,
		refreshTTL: refreshTTLSeconds,
	}
}

// GenerateTokens generates access and refresh tokens for a user
func (s *authService) GenerateTokens(ctx context.Context, userID uuid.UUID, userType string) (*models.TokenResponse, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := TokenClaims{
		UserID:   userID.String(),
		UserType: userType,
		TokenID:  tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "bizboost-auth",
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{"bizboost-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %v", err)
	}

	refreshToken := generateSecureToken()
	refreshTokenHash := hashToken(refreshToken)

	refreshTokenData := fmt.Sprintf("%s:%s:%d", userID.String(), userType, now.Unix()+int64(s.refreshTTL))
	cacheKey := fmt.Sprintf("refresh_token:%s", refreshTokenHash)
	if err := s.cacheSvc.SetString(ctx, cacheKey, refreshTokenData, time.Duration(s.refreshTTL)*time.Second); err != nil {
		log.Printf("Failed to store refresh token: %v", err)
		// Continue - token generation succeeded
	}

	return &models.TokenResponse{
		AccessToken:  accessTokenString,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokenTTL,
		RefreshToken: refreshToken,
		UserID:       userID.String(),
		TokenID:      tokenID,
		IssuedAt:     now,
	}, nil
}

// RefreshToken validates a refresh token and issues a new token pair.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	refreshTokenHash := hashToken(refreshToken)

	cacheKey := fmt.Sprintf("refresh_token:%s", refreshTokenHash)
	tokenData, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil || tokenData == "" {
		return nil, fmt.Errorf("invalid refresh token")
	}

	parts := strings.Split(tokenData, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid token data")
	}

	userIDStr, userType, expiryStr := parts[0], parts[1], parts[2]
	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token expiry")
	}

	if time.Now().Unix() > expiry {
		s.cacheSvc.Delete(ctx, cacheKey)
		return nil, fmt.Errorf("refresh token expired")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token")
	}

	// Rotate: the old refresh token is replaced by the new pair.
	s.cacheSvc.Delete(ctx, cacheKey)

	return s.GenerateTokens(ctx, userID, userType)
}

// ValidateToken validates JWT access token
func (s *authService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	jwtToken, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := jwtToken.Claims.(*TokenClaims)
	if !ok || !jwtToken.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	// Revoked tokens sit on a blacklist until their natural expiry.
	blacklistKey := fmt.Sprintf("token_blacklist:%s", claims.TokenID)
	if revoked, err := s.cacheSvc.GetString(ctx, blacklistKey); err == nil && revoked != "" {
		return nil, fmt.Errorf("token revoked")
	}

	return claims, nil
}

// RevokeToken revokes an access or refresh token
func (s *authService) RevokeToken(ctx context.Context, token string, tokenType *string) error {
	if tokenType != nil && *tokenType == "refresh_token" {
		cacheKey := fmt.Sprintf("refresh_token:%s", hashToken(token))
		return s.cacheSvc.Delete(ctx, cacheKey)
	}

	claims, err := s.ValidateToken(ctx, token)
	if err != nil {
		return fmt.Errorf("cannot revoke invalid token: %v", err)
	}

	blacklistKey := fmt.Sprintf("token_blacklist:%s", claims.TokenID)
	if err := s.cacheSvc.SetString(ctx, blacklistKey, "revoked", time.Until(claims.ExpiresAt.Time)); err != nil {
		log.Printf("Failed to blacklist token: %v", err)
	}

	return nil
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

// hashToken creates a SHA-256 hash of the token for secure storage
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
