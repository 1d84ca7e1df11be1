package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	token, err := GenerateJWT("session-1", "admin", "secret", now, time.Hour, "bestsystem")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret", now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.Subject)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "bestsystem", claims.Issuer)
}

func TestJWTExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	token, err := GenerateJWT("session-1", "admin", "secret", now, time.Hour, "bestsystem")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret", now.Add(2*time.Hour))
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestJWTWrongSecret(t *testing.T) {
	now := time.Now()
	token, err := GenerateJWT("session-1", "admin", "secret", now, time.Hour, "bestsystem")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "other", now)
	assert.Error(t, err)
}
