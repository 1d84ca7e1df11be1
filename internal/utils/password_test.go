package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPasswordHash(t *testing.T) {
	bcryptHash, err := HashPassword("s3cret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"bcrypt match", "s3cret", bcryptHash, true},
		{"bcrypt mismatch", "wrong", bcryptHash, false},
		{"sha256 match", "s3cret", HashPasswordSHA256("s3cret"), true},
		{"sha256 uppercase hex", "s3cret", "1EC1C26B50D5D3C58D9583181AF8076655FE00756BF7285940BA3670F99FCBA0", true},
		{"sha256 mismatch", "other", HashPasswordSHA256("s3cret"), false},
		{"dev fallback", DevPassword, "", true},
		{"dev fallback rejects others", "admin", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPasswordHash(tt.password, tt.hash))
		})
	}
}

func TestHashPasswordSHA256(t *testing.T) {
	assert.Equal(t, "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9", HashPasswordSHA256("admin123"))
}
