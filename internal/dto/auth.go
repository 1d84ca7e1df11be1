package dto

import "time"

// LoginRequest holds the operator credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionID"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LogoutRequest optionally forces the lock release.
type LogoutRequest struct {
	Force bool `json:"force"`
}
