package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "admin", cfg.OperatorUser)
	assert.Equal(t, 60*time.Minute, cfg.SessionLockTimeout)
	assert.True(t, decimal.RequireFromString("3.90").Equal(cfg.DailyFine))
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, LockBackendFile, cfg.SessionLockBackend)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("BESTCELL_USER", "loja")
	t.Setenv("DAILY_FINE", "2.5")
	t.Setenv("SESSION_LOCK_TIMEOUT", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "loja", cfg.OperatorUser)
	assert.True(t, decimal.RequireFromString("2.5").Equal(cfg.DailyFine))
	assert.Equal(t, 15*time.Minute, cfg.SessionLockTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DAILY_FINE", "abc")
	t.Setenv("JWT_EXPIRY_DURATION", "soon")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("3.90").Equal(cfg.DailyFine))
	assert.Equal(t, 8*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, time.UTC, cfg.Location)
}
