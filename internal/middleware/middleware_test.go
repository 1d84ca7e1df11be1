package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/middleware"
)

type stubAuthenticator struct {
	sessions map[string]*domain.Session
	err      error
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	if session, ok := s.sessions[token]; ok {
		return session, nil
	}
	return nil, apperrors.ErrUnauthorized
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	auth := stubAuthenticator{sessions: map[string]*domain.Session{"good": {SessionID: "sess-1"}}}

	tests := []struct {
		name       string
		header     string
		authn      stubAuthenticator
		wantStatus int
	}{
		{"missing header", "", auth, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", auth, http.StatusUnauthorized},
		{"unknown token", "Bearer nope", auth, http.StatusUnauthorized},
		{"valid token", "Bearer good", auth, http.StatusOK},
		{"lowercase scheme", "bearer good", auth, http.StatusOK},
		{"lock lost", "Bearer good", stubAuthenticator{err: apperrors.ErrSystemInUse}, http.StatusConflict},
		{"store failure", "Bearer good", stubAuthenticator{err: assert.AnError}, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(middleware.AuthMiddleware(tc.authn))
			r.GET("/protected", func(c *gin.Context) {
				session, ok := middleware.GetSessionFromContext(c)
				require.True(t, ok)
				c.String(http.StatusOK, session.SessionID)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, "sess-1", w.Body.String())
			}
		})
	}
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := newRouter(middleware.StructuredLoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromContext(c).Info("inside handler")
		c.Status(http.StatusNoContent)
	})

	t.Run("reuses the caller request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "req-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)
		for _, line := range lines {
			var entry map[string]any
			require.NoError(t, json.Unmarshal(line, &entry))
			assert.Equal(t, "req-42", entry["request_id"])
			assert.Equal(t, "/ping", entry["path"])
		}
	})

	t.Run("generates a request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))
}

func TestRateLimit(t *testing.T) {
	limiter, err := middleware.NewLimiter("2-M", nil)
	require.NoError(t, err)

	r := newRouter(middleware.RateLimit(limiter))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewLimiter_InvalidRate(t *testing.T) {
	_, err := middleware.NewLimiter("lots", nil)
	assert.Error(t, err)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantHeader string
	}{
		{"wildcard allows any origin", []string{"*"}, "http://shop.local", "*"},
		{"listed origin", []string{"http://shop.local"}, "http://shop.local", "http://shop.local"},
		{"unlisted origin", []string{"http://shop.local"}, "http://evil.local", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(middleware.CORS(tc.allowed))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tc.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantHeader, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestSecureHeaders(t *testing.T) {
	r := newRouter(middleware.SecureHeaders(false))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
