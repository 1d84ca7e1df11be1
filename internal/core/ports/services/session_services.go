package services

import (
	"context"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
)

// SessionSvcFacade manages the single operator session.
type SessionSvcFacade interface {
	// Login checks the credentials, opens a session and takes the operator lock.
	// Returns apperrors.ErrUnauthorized or apperrors.ErrSystemInUse.
	Login(ctx context.Context, username, password string) (*domain.SessionToken, error)

	// Authenticate validates a session token and confirms the session still holds the lock.
	Authenticate(ctx context.Context, token string) (*domain.Session, error)

	// Logout releases the lock held by sessionID, or any lock when force is set.
	Logout(ctx context.Context, sessionID string, force bool) error
}
