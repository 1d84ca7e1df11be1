package mapping

import (
	"fmt"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/models"
	"github.com/bestcell/bestsystem_backend/internal/utils/dates"
)

// ToModelSaleType converts a domain sale type to its stored value.
func ToModelSaleType(t domain.SaleType) string {
	if t == domain.SaleTypeCash {
		return models.SaleTypeCash
	}
	return models.SaleTypeInstallment
}

// ToDomainSaleType converts a stored sale type to the domain value.
func ToDomainSaleType(s string) (domain.SaleType, error) {
	switch s {
	case models.SaleTypeCash:
		return domain.SaleTypeCash, nil
	case models.SaleTypeInstallment:
		return domain.SaleTypeInstallment, nil
	}
	return "", fmt.Errorf("%w: unknown sale type %q", apperrors.ErrValidation, s)
}

// ToModelSale converts a domain Sale to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	m := models.Sale{
		ID:          d.SaleID,
		Customer:    d.Customer,
		Device:      d.Device,
		DownPayment: d.DownPayment,
		SaleType:    ToModelSaleType(d.SaleType),
		TotalValue:  d.TotalValue,
		SaleDate:    d.SaleDate.String(),
		CreatedAt:   dates.FormatTimestamp(d.CreatedAt),
	}
	if d.ArchivedAt != nil {
		archivedAt := dates.FormatTimestamp(*d.ArchivedAt)
		m.ArchivedAt = &archivedAt
	}
	return m
}

// ToDomainSale converts a model Sale to a domain Sale. The state is archived iff ArchivedAt is set.
func ToDomainSale(m models.Sale) (domain.Sale, error) {
	saleType, err := ToDomainSaleType(m.SaleType)
	if err != nil {
		return domain.Sale{}, err
	}
	saleDate, err := dates.NormalizeDate(m.SaleDate)
	if err != nil {
		return domain.Sale{}, err
	}
	createdAt, err := dates.NormalizeDateTime(m.CreatedAt)
	if err != nil {
		return domain.Sale{}, err
	}

	d := domain.Sale{
		SaleID:      m.ID,
		Customer:    m.Customer,
		Device:      m.Device,
		SaleType:    saleType,
		DownPayment: m.DownPayment,
		TotalValue:  m.TotalValue,
		SaleDate:    saleDate,
		CreatedAt:   createdAt,
		State:       domain.SaleActive,
	}
	if m.ArchivedAt != nil {
		archivedAt, err := dates.NormalizeDateTime(*m.ArchivedAt)
		if err != nil {
			return domain.Sale{}, err
		}
		d.ArchivedAt = &archivedAt
		d.State = domain.SaleArchived
	}
	return d, nil
}

// ToModelClosedSale converts a domain ClosedSaleRecord to a model ClosedSale
func ToModelClosedSale(d domain.ClosedSaleRecord) models.ClosedSale {
	return models.ClosedSale{
		ID:            d.SaleID,
		Customer:      d.Customer,
		Device:        d.Device,
		TotalValue:    d.TotalValue,
		ReceivedValue: d.ReceivedValue,
		LostValue:     d.LostValue,
		SaleDate:      d.SaleDate.String(),
		CreatedAt:     dates.FormatTimestamp(d.CreatedAt),
		ClosedAt:      dates.FormatTimestamp(d.ClosedAt),
		Reason:        d.Reason,
	}
}

// ToDomainClosedSale converts a model ClosedSale to a domain ClosedSaleRecord
func ToDomainClosedSale(m models.ClosedSale) (domain.ClosedSaleRecord, error) {
	saleDate, err := dates.NormalizeDate(m.SaleDate)
	if err != nil {
		return domain.ClosedSaleRecord{}, err
	}
	createdAt, err := dates.NormalizeDateTime(m.CreatedAt)
	if err != nil {
		return domain.ClosedSaleRecord{}, err
	}
	closedAt, err := dates.NormalizeDateTime(m.ClosedAt)
	if err != nil {
		return domain.ClosedSaleRecord{}, err
	}
	return domain.ClosedSaleRecord{
		SaleID:        m.ID,
		Customer:      m.Customer,
		Device:        m.Device,
		TotalValue:    m.TotalValue,
		ReceivedValue: m.ReceivedValue,
		LostValue:     m.LostValue,
		SaleDate:      saleDate,
		CreatedAt:     createdAt,
		ClosedAt:      closedAt,
		Reason:        m.Reason,
	}, nil
}
