package services

import (
	"context"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/dto"
)

// ParcelReaderSvc defines read operations for live parcels
type ParcelReaderSvc interface {
	// ListParcels retrieves live parcels with their summaries, optionally filtered by customer name.
	ListParcels(ctx context.Context, customerFilter string) ([]domain.ParcelView, error)

	// GetParcel retrieves one live parcel with its summary.
	GetParcel(ctx context.Context, parcelID string) (*domain.ParcelView, error)

	// ListAdjustments retrieves the adjustment history of a live parcel, oldest first.
	ListAdjustments(ctx context.Context, parcelID string) ([]domain.Adjustment, error)
}

// ParcelWriterSvc defines write operations on parcels
type ParcelWriterSvc interface {
	// RecordAdjustment appends an adjustment and archives the sale if it became fully paid.
	RecordAdjustment(ctx context.Context, parcelID string, req dto.CreateAdjustmentRequest) (*domain.AdjustmentOutcome, error)
}

// ParcelSvcFacade combines all parcel-related service interfaces
type ParcelSvcFacade interface {
	ParcelReaderSvc
	ParcelWriterSvc
}
