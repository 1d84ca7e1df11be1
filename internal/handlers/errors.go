package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
)

// ErrorResponse is the error body of every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps a service error to a status code. Unknown errors are logged and hidden behind
// fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidDateType):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConfirmationRequired):
		c.JSON(http.StatusPreconditionRequired, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
	case errors.Is(err, apperrors.ErrSystemInUse):
		c.JSON(http.StatusConflict, ErrorResponse{Error: apperrors.ErrSystemInUse.Error()})
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// bindError answers a request whose body or query failed to bind.
func bindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}
