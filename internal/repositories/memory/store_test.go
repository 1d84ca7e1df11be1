package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
	"github.com/bestcell/bestsystem_backend/internal/repositories/memory"
)

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	sale := domain.Sale{SaleID: "s1", Customer: "Ana", SaleDate: civil.Date{Year: 2024, Month: time.May, Day: 2}}
	parcels := []domain.Parcel{
		{ParcelID: "p1", SaleID: "s1", Number: 1, OriginalValue: decimal.NewFromInt(50), DueDate: civil.Date{Year: 2024, Month: time.June, Day: 2}},
		{ParcelID: "p0", SaleID: "s1", Number: 0, OriginalValue: decimal.NewFromInt(100), DueDate: civil.Date{Year: 2024, Month: time.May, Day: 2}},
	}
	require.NoError(t, store.SaveSale(ctx, sale, parcels))
	require.NoError(t, store.SaveAdjustment(ctx, domain.Adjustment{AdjustmentID: "a1", ParcelID: "p0", Kind: domain.AdjustmentPayment, Amount: decimal.NewFromInt(100)}))
}

func TestStore_ArchivePreservesDetail(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seed(t, store)

	require.NoError(t, store.ArchiveSale(ctx, "s1", time.Now()))

	_, err := store.FindSaleByID(ctx, "s1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	archived, err := store.FindArchivedSaleByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.SaleArchived, archived.State)

	live, _ := store.ListParcels(ctx)
	assert.Empty(t, live)
	kept, _ := store.ListArchivedParcelsBySale(ctx, "s1")
	require.Len(t, kept, 2)
	assert.Equal(t, "p0", kept[0].ParcelID)

	adjustments, _ := store.ListArchivedAdjustmentsBySale(ctx, "s1")
	assert.Len(t, adjustments, 1)
	liveAdjustments, _ := store.ListAdjustments(ctx)
	assert.Empty(t, liveAdjustments)
}

func TestStore_WithinTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seed(t, store)
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		require.NoError(t, repos.Sales.DeleteSale(ctx, "s1"))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	_, err = store.FindSaleByID(ctx, "s1")
	assert.NoError(t, err)
	parcels, _ := store.ListParcelsBySale(ctx, "s1")
	assert.Len(t, parcels, 2)
	adjustments, _ := store.ListAdjustmentsBySale(ctx, "s1")
	assert.Len(t, adjustments, 1)
}

func TestStore_SaveAdjustmentUnknownParcel(t *testing.T) {
	store := memory.NewStore()
	err := store.SaveAdjustment(context.Background(), domain.Adjustment{ParcelID: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
