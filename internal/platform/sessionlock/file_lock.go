// Package sessionlock implements the operator lock on a JSON file or on Redis.
package sessionlock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
	"github.com/bestcell/bestsystem_backend/internal/utils/dates"
)

// DefaultTimeout is how long a lock stays valid without being released.
const DefaultTimeout = 60 * time.Minute

// Option configures a lock store.
type Option func(*options)

type options struct {
	timeout time.Duration
	now     func() time.Time
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{timeout: DefaultTimeout, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// lockRecord is the on-disk shape. created_at is a naive UTC ISO-8601 timestamp.
type lockRecord struct {
	SessionID string `json:"session_id"`
	CreatedAt string `json:"created_at"`
}

// FileLock keeps the lock in a JSON file.
type FileLock struct {
	path string
	opts options
	mu   sync.Mutex
}

var _ portsrepo.SessionLockStore = (*FileLock)(nil)

// NewFileLock creates a FileLock at path, creating its directory if needed.
func NewFileLock(path string, opts ...Option) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	return &FileLock{path: path, opts: newOptions(opts)}, nil
}

func (l *FileLock) Acquire(_ context.Context, sessionID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.read()
	if err != nil {
		return false, err
	}
	now := l.opts.now()

	switch {
	case existing == nil:
	case existing.SessionID == sessionID:
		return true, nil
	case existing.IsExpired(now, l.opts.timeout):
		if err := l.remove(); err != nil {
			return false, err
		}
	default:
		return false, nil
	}

	if err := l.write(domain.SessionLock{SessionID: sessionID, CreatedAt: now}); err != nil {
		return false, err
	}
	return true, nil
}

func (l *FileLock) Release(_ context.Context, sessionID string, force bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if force {
		return l.remove()
	}
	existing, err := l.read()
	if err != nil {
		return err
	}
	if existing != nil && existing.SessionID == sessionID {
		return l.remove()
	}
	return nil
}

func (l *FileLock) Current(_ context.Context) (*domain.SessionLock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

// read treats a missing or unreadable file as no lock.
func (l *FileLock) read() (*domain.SessionLock, error) {
	raw, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read session lock", err)
	}

	var rec lockRecord
	if err := json.Unmarshal(raw, &rec); err != nil || rec.SessionID == "" {
		return nil, nil
	}
	createdAt, err := dates.NormalizeDateTime(rec.CreatedAt)
	if err != nil {
		return nil, nil
	}
	return &domain.SessionLock{SessionID: rec.SessionID, CreatedAt: createdAt}, nil
}

func (l *FileLock) write(lock domain.SessionLock) error {
	raw, err := json.Marshal(lockRecord{
		SessionID: lock.SessionID,
		CreatedAt: lock.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000"),
	})
	if err != nil {
		return err
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return apperrors.NewAppError(500, "failed to write session lock", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return apperrors.NewAppError(500, "failed to write session lock", err)
	}
	return nil
}

func (l *FileLock) remove() error {
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.NewAppError(500, "failed to remove session lock", err)
	}
	return nil
}
