package models

import "time"

// TokenResponse is the payload returned by login/signup/refresh.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	UserID       string    `json:"user_id"`
	TokenID      string    `json:"token_id"`
	IssuedAt     time.Time `json:"issued_at"`
}

// RefreshToken mirrors the hashed refresh token record kept in the KV store.
type RefreshToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
