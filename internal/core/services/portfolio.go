package services

import (
	"context"
	"fmt"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
	"github.com/bestcell/bestsystem_backend/internal/utils/accounting"
)

// loadPortfolio reads the snapshot the reporting folds work on. Archived rows are only read when
// withArchive is set.
func loadPortfolio(ctx context.Context, sales portsrepo.SaleReader, parcels portsrepo.ParcelRepositoryFacade, withArchive bool) (accounting.Portfolio, error) {
	var p accounting.Portfolio
	var err error

	if p.ActiveSales, err = sales.ListActiveSales(ctx); err != nil {
		return p, fmt.Errorf("failed to list active sales: %w", err)
	}
	if p.Parcels, err = parcels.ListParcels(ctx); err != nil {
		return p, fmt.Errorf("failed to list parcels: %w", err)
	}
	if p.Adjustments, err = parcels.ListAdjustments(ctx); err != nil {
		return p, fmt.Errorf("failed to list adjustments: %w", err)
	}
	if !withArchive {
		return p, nil
	}
	if p.ArchivedSales, err = sales.ListArchivedSales(ctx); err != nil {
		return p, fmt.Errorf("failed to list archived sales: %w", err)
	}
	if p.ArchivedAdjustments, err = parcels.ListArchivedAdjustments(ctx); err != nil {
		return p, fmt.Errorf("failed to list archived adjustments: %w", err)
	}
	return p, nil
}

// parcelViews summarizes parcels of a single sale as of the ledger's day.
func parcelViews(ledger accounting.Ledger, sale domain.Sale, parcels []domain.Parcel, adjustments []domain.Adjustment) []domain.ParcelView {
	byParcel := accounting.GroupByParcel(adjustments)
	views := make([]domain.ParcelView, 0, len(parcels))
	for _, p := range parcels {
		views = append(views, domain.ParcelView{
			Parcel:   p,
			Customer: sale.Customer,
			Device:   sale.Device,
			Summary:  ledger.Summarize(p, byParcel[p.ParcelID]),
		})
	}
	accounting.SortParcelViews(views)
	return views
}
