package repositories

import (
	"context"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
)

// SessionLockStore persists the single operator lock.
type SessionLockStore interface {
	// Acquire takes the lock for sessionID. It succeeds when no lock exists, when sessionID already
	// holds it, or when the existing lock has expired (it is then replaced). It returns false when
	// another live session holds the lock.
	Acquire(ctx context.Context, sessionID string) (bool, error)

	// Release removes the lock if sessionID owns it, or unconditionally when force is set.
	Release(ctx context.Context, sessionID string, force bool) error

	// Current returns the lock as stored, or nil when there is none.
	Current(ctx context.Context) (*domain.SessionLock, error)
}
