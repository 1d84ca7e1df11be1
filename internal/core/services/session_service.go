package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
	portssvc "github.com/bestcell/bestsystem_backend/internal/core/ports/services"
	"github.com/bestcell/bestsystem_backend/internal/utils"
)

// SessionSettings carries the operator credentials and token parameters.
type SessionSettings struct {
	Username     string
	PasswordHash string
	JWTSecret    string
	TokenExpiry  time.Duration
	Issuer       string
}

type sessionService struct {
	BaseService
	settings SessionSettings
	lock     portsrepo.SessionLockStore
}

// NewSessionService creates the single-operator session service.
func NewSessionService(settings SessionSettings, lock portsrepo.SessionLockStore, options ...ServiceOption) portssvc.SessionSvcFacade {
	return &sessionService{
		BaseService: newBaseService(options),
		settings:    settings,
		lock:        lock,
	}
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

func (s *sessionService) Login(ctx context.Context, username, password string) (*domain.SessionToken, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.settings.Username)) == 1
	passOK := utils.CheckPasswordHash(password, s.settings.PasswordHash)
	if !userOK || !passOK {
		s.LogInfo(ctx, "Login rejected", slog.String("username", username))
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}

	now := s.Now()
	session := domain.Session{
		SessionID:     uuid.NewString(),
		Username:      s.settings.Username,
		Authenticated: true,
		LoginTime:     now,
	}

	acquired, err := s.lock.Acquire(ctx, session.SessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to acquire session lock")
		return nil, fmt.Errorf("failed to acquire session lock: %w", err)
	}
	if !acquired {
		s.LogInfo(ctx, "Login refused, lock held by another session", slog.String("username", username))
		return nil, apperrors.ErrSystemInUse
	}
	session.LockAcquired = true

	token, err := utils.GenerateJWT(session.SessionID, session.Username, s.settings.JWTSecret, now, s.settings.TokenExpiry, s.settings.Issuer)
	if err != nil {
		_ = s.lock.Release(ctx, session.SessionID, false)
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	s.LogInfo(ctx, "Session opened", slog.String("session_id", session.SessionID))
	return &domain.SessionToken{
		Session:   session,
		Token:     token,
		ExpiresAt: now.Add(s.settings.TokenExpiry),
	}, nil
}

// Authenticate re-acquires the lock for the token's session, which also takes over an expired
// lock left by a dead session.
func (s *sessionService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.settings.JWTSecret, s.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	acquired, err := s.lock.Acquire(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to check session lock: %w", err)
	}
	if !acquired {
		return nil, apperrors.ErrSystemInUse
	}

	session := &domain.Session{
		SessionID:     claims.Subject,
		Username:      claims.Username,
		Authenticated: true,
		LockAcquired:  true,
	}
	if claims.IssuedAt != nil {
		session.LoginTime = claims.IssuedAt.Time
	}
	return session, nil
}

func (s *sessionService) Logout(ctx context.Context, sessionID string, force bool) error {
	if err := s.lock.Release(ctx, sessionID, force); err != nil {
		s.LogError(ctx, err, "Failed to release session lock", slog.String("session_id", sessionID))
		return fmt.Errorf("failed to release session lock: %w", err)
	}
	s.LogInfo(ctx, "Session closed", slog.String("session_id", sessionID), slog.Bool("force", force))
	return nil
}
