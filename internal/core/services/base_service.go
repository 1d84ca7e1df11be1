package services

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/bestcell/bestsystem_backend/internal/middleware"
	"github.com/bestcell/bestsystem_backend/internal/utils/accounting"
	"github.com/bestcell/bestsystem_backend/internal/utils/dates"
)

// BaseService provides common functionality for all services
type BaseService struct {
	now       func() time.Time
	location  *time.Location
	dailyFine decimal.Decimal
}

// ServiceOption is a functional option shared by the services
type ServiceOption func(*BaseService)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.now = now
	}
}

// WithLocation sets the location in which "today" is evaluated.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *BaseService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithDailyFine overrides the informational daily fine.
func WithDailyFine(fine decimal.Decimal) ServiceOption {
	return func(s *BaseService) {
		s.dailyFine = fine
	}
}

func newBaseService(options []ServiceOption) BaseService {
	base := BaseService{
		now:       time.Now,
		location:  time.UTC,
		dailyFine: accounting.DefaultDailyFine,
	}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now returns the current instant.
func (s *BaseService) Now() time.Time {
	return s.now()
}

// Today returns the current calendar date in the configured location.
func (s *BaseService) Today() civil.Date {
	return dates.Today(s.now(), s.location)
}

// Ledger returns a ledger evaluated as of today.
func (s *BaseService) Ledger() accounting.Ledger {
	return accounting.NewLedger(s.Today(), s.dailyFine)
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}
