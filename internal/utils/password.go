package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DevPassword is the operator password accepted when no hash is configured.
const DevPassword = "admin123"

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// HashPasswordSHA256 returns the unsalted hex SHA-256 of a password, the legacy credential format.
func HashPasswordSHA256(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash or a legacy SHA-256 hex hash.
// An empty hash falls back to the development password.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		hash = HashPasswordSHA256(DevPassword)
	}
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	computed := HashPasswordSHA256(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToLower(hash))) == 1
}
