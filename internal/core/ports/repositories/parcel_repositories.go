package repositories

import (
	"context"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
)

// ParcelReader defines read operations for parcels of active sales
type ParcelReader interface {
	// FindParcelByID retrieves a live parcel. Returns apperrors.ErrNotFound otherwise.
	FindParcelByID(ctx context.Context, parcelID string) (*domain.Parcel, error)

	// ListParcels retrieves every live parcel ordered by due date and number.
	ListParcels(ctx context.Context) ([]domain.Parcel, error)

	// ListParcelsBySale retrieves the live parcels of a sale ordered by number.
	ListParcelsBySale(ctx context.Context, saleID string) ([]domain.Parcel, error)

	// ListArchivedParcelsBySale retrieves the preserved parcels of an archived sale.
	ListArchivedParcelsBySale(ctx context.Context, saleID string) ([]domain.Parcel, error)
}

// AdjustmentReader defines read operations for adjustment events
type AdjustmentReader interface {
	// ListAdjustmentsByParcel retrieves the adjustments of a live parcel, oldest first.
	ListAdjustmentsByParcel(ctx context.Context, parcelID string) ([]domain.Adjustment, error)

	// ListAdjustmentsBySale retrieves the adjustments of every live parcel of a sale, oldest first.
	ListAdjustmentsBySale(ctx context.Context, saleID string) ([]domain.Adjustment, error)

	// ListAdjustments retrieves every live adjustment, oldest first.
	ListAdjustments(ctx context.Context) ([]domain.Adjustment, error)

	// ListArchivedAdjustments retrieves the preserved adjustments of archived sales, oldest first.
	ListArchivedAdjustments(ctx context.Context) ([]domain.Adjustment, error)

	// ListArchivedAdjustmentsBySale retrieves the preserved adjustments of one archived sale.
	ListArchivedAdjustmentsBySale(ctx context.Context, saleID string) ([]domain.Adjustment, error)
}

// AdjustmentWriter defines write operations for adjustment events
type AdjustmentWriter interface {
	// SaveAdjustment appends an adjustment to a live parcel.
	SaveAdjustment(ctx context.Context, adjustment domain.Adjustment) error
}

// ParcelRepositoryFacade combines all parcel-related repository interfaces
type ParcelRepositoryFacade interface {
	ParcelReader
	AdjustmentReader
	AdjustmentWriter
}
