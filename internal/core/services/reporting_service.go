package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
	portssvc "github.com/bestcell/bestsystem_backend/internal/core/ports/services"
	"github.com/bestcell/bestsystem_backend/internal/reports/xlsx"
	"github.com/bestcell/bestsystem_backend/internal/utils/accounting"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	saleRepo   portsrepo.SaleReader
	parcelRepo portsrepo.ParcelRepositoryFacade
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(saleRepo portsrepo.SaleReader, parcelRepo portsrepo.ParcelRepositoryFacade, options ...ServiceOption) portssvc.ReportingSvcFacade {
	return &reportingService{
		BaseService: newBaseService(options),
		saleRepo:    saleRepo,
		parcelRepo:  parcelRepo,
	}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) views(ctx context.Context) ([]domain.ParcelView, error) {
	portfolio, err := loadPortfolio(ctx, s.saleRepo, s.parcelRepo, false)
	if err != nil {
		return nil, err
	}
	return s.Ledger().ParcelViews(portfolio), nil
}

func (s *reportingService) MonthlySummary(ctx context.Context, from, to civil.Date) ([]domain.MonthlySummaryRow, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: start date %s is after end date %s", apperrors.ErrValidation, from, to)
	}
	portfolio, err := loadPortfolio(ctx, s.saleRepo, s.parcelRepo, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to load portfolio for monthly summary")
		return nil, err
	}
	rows := accounting.MonthlySummary(portfolio, s.Ledger().ParcelViews(portfolio), from, to)
	s.LogDebug(ctx, "Monthly summary computed",
		slog.String("from", from.String()),
		slog.String("to", to.String()),
		slog.Int("months", len(rows)))
	return rows, nil
}

func (s *reportingService) ExportMonthlySummary(ctx context.Context, from, to civil.Date) ([]byte, error) {
	rows, err := s.MonthlySummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	critical, err := s.CriticalCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return xlsx.MonthlyReport(xlsx.MonthlyReportInput{
		From:        from,
		To:          to,
		GeneratedAt: s.Now().In(s.location),
		Rows:        rows,
		Critical:    critical,
	})
}

func (s *reportingService) SalesOfMonth(ctx context.Context, year int, month time.Month) ([]domain.Sale, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: invalid month %d", apperrors.ErrValidation, month)
	}
	portfolio, err := loadPortfolio(ctx, s.saleRepo, s.parcelRepo, true)
	if err != nil {
		return nil, err
	}
	return accounting.SalesInMonth(portfolio, year, month), nil
}

func (s *reportingService) ParcelsDueInMonth(ctx context.Context, year int, month time.Month) ([]domain.ParcelView, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: invalid month %d", apperrors.ErrValidation, month)
	}
	views, err := s.views(ctx)
	if err != nil {
		return nil, err
	}
	return accounting.DueInMonth(views, year, month), nil
}

func (s *reportingService) OpenParcels(ctx context.Context) ([]domain.ParcelView, error) {
	views, err := s.views(ctx)
	if err != nil {
		return nil, err
	}
	return accounting.OpenParcels(views), nil
}

func (s *reportingService) OverdueParcels(ctx context.Context) ([]domain.ParcelView, error) {
	views, err := s.views(ctx)
	if err != nil {
		return nil, err
	}
	return accounting.OverdueParcels(views), nil
}

func (s *reportingService) CriticalCustomers(ctx context.Context) ([]domain.CriticalCustomer, error) {
	views, err := s.views(ctx)
	if err != nil {
		return nil, err
	}
	return accounting.CriticalCustomers(views), nil
}

func (s *reportingService) HealthSummary(ctx context.Context) (*domain.HealthSummary, error) {
	portfolio, err := loadPortfolio(ctx, s.saleRepo, s.parcelRepo, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to load portfolio for health summary")
		return nil, err
	}
	ledger := s.Ledger()
	health := ledger.Health(portfolio, ledger.ParcelViews(portfolio))
	return &health, nil
}
