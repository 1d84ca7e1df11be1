package repositories

import (
	"context"
	"time"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
)

// SaleReader defines read operations for sale data
type SaleReader interface {
	// FindSaleByID retrieves an active sale. Returns apperrors.ErrNotFound otherwise.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// FindArchivedSaleByID retrieves an archived sale. Returns apperrors.ErrNotFound otherwise.
	FindArchivedSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListActiveSales retrieves active sales, newest sale date first.
	ListActiveSales(ctx context.Context) ([]domain.Sale, error)

	// ListArchivedSales retrieves archived sales, most recently archived first.
	ListArchivedSales(ctx context.Context) ([]domain.Sale, error)

	// ListClosedSales retrieves the write-off snapshots, most recently closed first.
	ListClosedSales(ctx context.Context) ([]domain.ClosedSaleRecord, error)
}

// SaleWriter defines write operations for sale data
type SaleWriter interface {
	// SaveSale persists a new active sale together with its parcel schedule.
	SaveSale(ctx context.Context, sale domain.Sale, parcels []domain.Parcel) error

	// ArchiveSale moves an active sale, its parcels and their adjustments to the archive tables.
	ArchiveSale(ctx context.Context, saleID string, archivedAt time.Time) error

	// SaveClosedSale persists a write-off snapshot.
	SaveClosedSale(ctx context.Context, record domain.ClosedSaleRecord) error

	// DeleteSale removes an active sale with its parcels and adjustments.
	DeleteSale(ctx context.Context, saleID string) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
