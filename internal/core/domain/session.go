package domain

import "time"

// Session is the per-connection operator context. It replaces process-wide UI flags and travels in
// the request context.
type Session struct {
	SessionID     string    `json:"sessionID"`
	Username      string    `json:"username"`
	Authenticated bool      `json:"authenticated"`
	LockAcquired  bool      `json:"lockAcquired"`
	LoginTime     time.Time `json:"loginTime"`
}

// SessionLock is the advisory operator lock: at most one session holds it at a time.
type SessionLock struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether the lock is older than timeout at now.
func (l SessionLock) IsExpired(now time.Time, timeout time.Duration) bool {
	return now.Sub(l.CreatedAt) > timeout
}

// SessionToken is the outcome of a successful login.
type SessionToken struct {
	Session   Session   `json:"session"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
