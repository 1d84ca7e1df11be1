package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
)

// SessionAuthenticator validates a session token.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}

// AuthMiddleware creates a Gin middleware handler that requires a Bearer session token whose
// session still holds the operator lock.
func AuthMiddleware(authenticator SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		session, err := authenticator.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrSystemInUse):
				logger.Warn("Session no longer holds the operator lock")
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": apperrors.ErrSystemInUse.Error()})
			case errors.Is(err, apperrors.ErrUnauthorized):
				logger.Warn("Invalid session token", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			default:
				logger.Error("Failed to authenticate session", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
			}
			return
		}

		enriched := logger.With(slog.String("session_id", session.SessionID))
		ctx := WithLogger(WithSession(c.Request.Context(), session), enriched)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
