package services

import (
	"context"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/dto"
)

// SaleReaderSvc defines read operations for sale data
type SaleReaderSvc interface {
	// GetSale retrieves an active or archived sale with its parcel views.
	GetSale(ctx context.Context, saleID string) (*domain.SaleDetail, error)

	// ListSales retrieves sales in the given state (active or archived).
	ListSales(ctx context.Context, state domain.SaleState) ([]domain.Sale, error)

	// ListClosedSales retrieves write-off snapshots, most recent first.
	ListClosedSales(ctx context.Context) ([]domain.ClosedSaleRecord, error)

	// IsSaleFullyPaid reports whether every parcel of the sale has a balance <= 0.
	IsSaleFullyPaid(ctx context.Context, saleID string) (bool, error)

	// PreviewClosure computes what a write-off would record, without changing anything.
	PreviewClosure(ctx context.Context, saleID string) (*domain.ClosurePreview, error)
}

// SaleLifecycleSvc defines the state transitions of a sale
type SaleLifecycleSvc interface {
	// CreateSale registers a sale and its parcel schedule. Cash sales are archived at once.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*domain.SaleDetail, error)

	// ArchiveSale moves a fully paid active sale to the archive.
	ArchiveSale(ctx context.Context, saleID string) error

	// CloseSaleCritical writes off an active sale with the given reason.
	CloseSaleCritical(ctx context.Context, saleID string, reason domain.ClosureReason) (*domain.ClosedSaleRecord, error)

	// DeleteSale removes an active sale and everything it owns. confirmed must be true.
	DeleteSale(ctx context.Context, saleID string, confirmed bool) error
}

// SaleSvcFacade combines all sale-related service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleLifecycleSvc
}
