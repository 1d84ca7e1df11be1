package mapping

import (
	"fmt"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/models"
	"github.com/bestcell/bestsystem_backend/internal/utils/dates"
)

var adjustmentKindsToModel = map[domain.AdjustmentKind]string{
	domain.AdjustmentPayment:   models.AdjustmentPayment,
	domain.AdjustmentSurcharge: models.AdjustmentSurcharge,
	domain.AdjustmentDiscount:  models.AdjustmentDiscount,
}

// ToModelAdjustmentKind converts a domain adjustment kind to its stored value.
func ToModelAdjustmentKind(k domain.AdjustmentKind) string {
	return adjustmentKindsToModel[k]
}

// ToDomainAdjustmentKind converts a stored adjustment kind to the domain value.
func ToDomainAdjustmentKind(s string) (domain.AdjustmentKind, error) {
	for k, stored := range adjustmentKindsToModel {
		if stored == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown adjustment kind %q", apperrors.ErrValidation, s)
}

// ToModelParcel converts a domain Parcel to a model Parcel
func ToModelParcel(d domain.Parcel) models.Parcel {
	return models.Parcel{
		ID:            d.ParcelID,
		SaleID:        d.SaleID,
		Number:        d.Number,
		OriginalValue: d.OriginalValue,
		DueDate:       d.DueDate.String(),
		CreatedAt:     dates.FormatTimestamp(d.CreatedAt),
	}
}

// ToDomainParcel converts a model Parcel to a domain Parcel
func ToDomainParcel(m models.Parcel) (domain.Parcel, error) {
	due, err := dates.NormalizeDate(m.DueDate)
	if err != nil {
		return domain.Parcel{}, err
	}
	createdAt, err := dates.NormalizeDateTime(m.CreatedAt)
	if err != nil {
		return domain.Parcel{}, err
	}
	return domain.Parcel{
		ParcelID:      m.ID,
		SaleID:        m.SaleID,
		Number:        m.Number,
		OriginalValue: m.OriginalValue,
		DueDate:       due,
		CreatedAt:     createdAt,
	}, nil
}

// ToModelAdjustment converts a domain Adjustment to a model Adjustment
func ToModelAdjustment(d domain.Adjustment) models.Adjustment {
	return models.Adjustment{
		ID:          d.AdjustmentID,
		ParcelID:    d.ParcelID,
		Kind:        ToModelAdjustmentKind(d.Kind),
		Amount:      d.Amount,
		Description: d.Description,
		CreatedAt:   dates.FormatTimestamp(d.CreatedAt),
	}
}

// ToDomainAdjustment converts a model Adjustment to a domain Adjustment
func ToDomainAdjustment(m models.Adjustment) (domain.Adjustment, error) {
	kind, err := ToDomainAdjustmentKind(m.Kind)
	if err != nil {
		return domain.Adjustment{}, err
	}
	createdAt, err := dates.NormalizeDateTime(m.CreatedAt)
	if err != nil {
		return domain.Adjustment{}, err
	}
	return domain.Adjustment{
		AdjustmentID: m.ID,
		ParcelID:     m.ParcelID,
		Kind:         kind,
		Amount:       m.Amount,
		Description:  m.Description,
		CreatedAt:    createdAt,
	}, nil
}
