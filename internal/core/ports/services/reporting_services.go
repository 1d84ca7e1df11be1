package services

import (
	"context"
	"time"

	"cloud.google.com/go/civil"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
)

// ReportingSvcFacade defines the read-only reporting operations.
type ReportingSvcFacade interface {
	// MonthlySummary groups the sales of [from, to] by month.
	MonthlySummary(ctx context.Context, from, to civil.Date) ([]domain.MonthlySummaryRow, error)

	// ExportMonthlySummary renders MonthlySummary as an XLSX workbook.
	ExportMonthlySummary(ctx context.Context, from, to civil.Date) ([]byte, error)

	// SalesOfMonth lists active and archived sales registered in the month.
	SalesOfMonth(ctx context.Context, year int, month time.Month) ([]domain.Sale, error)

	// ParcelsDueInMonth lists live parcels due in the month.
	ParcelsDueInMonth(ctx context.Context, year int, month time.Month) ([]domain.ParcelView, error)

	// OpenParcels lists live parcels with a positive balance.
	OpenParcels(ctx context.Context) ([]domain.ParcelView, error)

	// OverdueParcels lists live parcels whose status is Overdue.
	OverdueParcels(ctx context.Context) ([]domain.ParcelView, error)

	// CriticalCustomers aggregates overdue parcels per sale.
	CriticalCustomers(ctx context.Context) ([]domain.CriticalCustomer, error)

	// HealthSummary computes the portfolio-wide totals.
	HealthSummary(ctx context.Context) (*domain.HealthSummary, error)
}
