package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/bestcell/bestsystem_backend/internal/core/ports/services"
	"github.com/bestcell/bestsystem_backend/internal/dto"
	"github.com/bestcell/bestsystem_backend/internal/middleware"
)

// authHandler handles the operator session endpoints.
type authHandler struct {
	sessionService portssvc.SessionSvcFacade
}

func newAuthHandler(ss portssvc.SessionSvcFacade) *authHandler {
	return &authHandler{sessionService: ss}
}

// registerAuthRoutes sets up the routes for authentication. Login is rate limited per client IP.
func registerAuthRoutes(r *gin.Engine, v1 *gin.RouterGroup, sessionService portssvc.SessionSvcFacade, loginLimiter *limiter.Limiter) {
	h := newAuthHandler(sessionService)

	public := r.Group("/api/v1/auth")
	if loginLimiter != nil {
		public.POST("/login", middleware.RateLimit(loginLimiter), h.login)
	} else {
		public.POST("/login", h.login)
	}

	v1.POST("/auth/logout", h.logout)
}

// login godoc
// @Summary Operator login
// @Description Checks the operator credentials and takes the single-session lock.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "System in use by another session"
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	token, err := h.sessionService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, logger, err, "Failed to open session")
		return
	}

	logger.Info("Operator logged in", slog.String("session_id", token.Session.SessionID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token.Token,
		SessionID: token.Session.SessionID,
		ExpiresAt: token.ExpiresAt,
	})
}

// logout godoc
// @Summary Operator logout
// @Description Releases the session lock. With force set any holder's lock is released.
// @Tags auth
// @Accept json
// @Param logout body dto.LogoutRequest false "Logout options"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.LogoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, logger, err)
			return
		}
	}

	if err := h.sessionService.Logout(c.Request.Context(), session.SessionID, req.Force); err != nil {
		respondError(c, logger, err, "Failed to close session")
		return
	}
	c.Status(http.StatusNoContent)
}
