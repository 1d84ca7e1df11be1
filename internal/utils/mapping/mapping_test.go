package mapping_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/models"
	"github.com/bestcell/bestsystem_backend/internal/utils/mapping"
)

func TestToModelSale_UsesStoredVocabulary(t *testing.T) {
	sale := domain.Sale{
		SaleID:      "s1",
		Customer:    "Ana",
		Device:      "Phone",
		SaleType:    domain.SaleTypeCash,
		DownPayment: decimal.RequireFromString("500"),
		TotalValue:  decimal.RequireFromString("500"),
		SaleDate:    civil.Date{Year: 2024, Month: time.January, Day: 31},
		CreatedAt:   time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC),
	}

	m := mapping.ToModelSale(sale)

	assert.Equal(t, models.SaleTypeCash, m.SaleType)
	assert.Equal(t, "2024-01-31", m.SaleDate)
	assert.Equal(t, "2024-01-31T10:00:00.000000000Z", m.CreatedAt)
	assert.Nil(t, m.ArchivedAt)
}

func TestToDomainSale_ReadsLegacyRows(t *testing.T) {
	archivedAt := "2024-02-01 08:30:00"
	m := models.Sale{
		ID:         "s1",
		SaleType:   models.SaleTypeInstallment,
		SaleDate:   "2024-01-15T00:00:00",
		CreatedAt:  "2024-01-15",
		ArchivedAt: &archivedAt,
	}

	d, err := mapping.ToDomainSale(m)

	require.NoError(t, err)
	assert.Equal(t, domain.SaleTypeInstallment, d.SaleType)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.January, Day: 15}, d.SaleDate)
	assert.Equal(t, domain.SaleArchived, d.State)
	require.NotNil(t, d.ArchivedAt)
	assert.Equal(t, 8, d.ArchivedAt.Hour())
}

func TestToDomainSale_RejectsUnknownType(t *testing.T) {
	_, err := mapping.ToDomainSale(models.Sale{SaleType: "fiado", SaleDate: "2024-01-01", CreatedAt: "2024-01-01"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAdjustmentKindRoundTrip(t *testing.T) {
	for _, kind := range []domain.AdjustmentKind{domain.AdjustmentPayment, domain.AdjustmentSurcharge, domain.AdjustmentDiscount} {
		got, err := mapping.ToDomainAdjustmentKind(mapping.ToModelAdjustmentKind(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}
	assert.Equal(t, "acrescimo", mapping.ToModelAdjustmentKind(domain.AdjustmentSurcharge))

	_, err := mapping.ToDomainAdjustmentKind("estorno")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestToDomainParcel_InvalidDate(t *testing.T) {
	_, err := mapping.ToDomainParcel(models.Parcel{DueDate: "31/01/2024", CreatedAt: "2024-01-01"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateType)
}
