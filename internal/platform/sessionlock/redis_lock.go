package sessionlock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
)

// DefaultRedisKey holds the lock when SESSION_LOCK_BACKEND=redis.
const DefaultRedisKey = "bestsystem:session_lock"

// releaseScript deletes the key only if its value belongs to ARGV[1].
var releaseScript = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if v and string.sub(v, 1, string.len(ARGV[1]) + 1) == ARGV[1] .. "|" then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock keeps the lock in a Redis key whose TTL is the lock timeout. The value is
// "<session_id>|<created_at RFC3339Nano>".
type RedisLock struct {
	client redis.UniversalClient
	key    string
	opts   options
}

var _ portsrepo.SessionLockStore = (*RedisLock)(nil)

// NewRedisLock creates a RedisLock on key.
func NewRedisLock(client redis.UniversalClient, key string, opts ...Option) *RedisLock {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisLock{client: client, key: key, opts: newOptions(opts)}
}

func (l *RedisLock) Acquire(ctx context.Context, sessionID string) (bool, error) {
	now := l.opts.now()
	value := encodeLock(domain.SessionLock{SessionID: sessionID, CreatedAt: now})

	ok, err := l.client.SetNX(ctx, l.key, value, l.opts.timeout).Result()
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to acquire session lock", err)
	}
	if ok {
		return true, nil
	}

	existing, err := l.Current(ctx)
	if err != nil {
		return false, err
	}
	switch {
	case existing == nil:
		// released between SETNX and GET, or unreadable; a corrupt value counts as free
		if err := l.client.Set(ctx, l.key, value, l.opts.timeout).Err(); err != nil {
			return false, apperrors.NewAppError(500, "failed to replace unreadable session lock", err)
		}
		return true, nil
	case existing.SessionID == sessionID:
		return true, nil
	case existing.IsExpired(now, l.opts.timeout):
		if err := l.client.Set(ctx, l.key, value, l.opts.timeout).Err(); err != nil {
			return false, apperrors.NewAppError(500, "failed to replace expired session lock", err)
		}
		return true, nil
	default:
		return false, nil
	}
}

func (l *RedisLock) Release(ctx context.Context, sessionID string, force bool) error {
	if force {
		if err := l.client.Del(ctx, l.key).Err(); err != nil {
			return apperrors.NewAppError(500, "failed to release session lock", err)
		}
		return nil
	}
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, sessionID).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return apperrors.NewAppError(500, "failed to release session lock", err)
	}
	return nil
}

func (l *RedisLock) Current(ctx context.Context) (*domain.SessionLock, error) {
	raw, err := l.client.Get(ctx, l.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read session lock", err)
	}
	lock, err := decodeLock(raw)
	if err != nil {
		return nil, nil
	}
	return lock, nil
}

func encodeLock(lock domain.SessionLock) string {
	return lock.SessionID + "|" + lock.CreatedAt.UTC().Format(time.RFC3339Nano)
}

func decodeLock(raw string) (*domain.SessionLock, error) {
	sessionID, createdAt, found := strings.Cut(raw, "|")
	if !found || sessionID == "" {
		return nil, fmt.Errorf("malformed lock value %q", raw)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, err
	}
	return &domain.SessionLock{SessionID: sessionID, CreatedAt: t}, nil
}
