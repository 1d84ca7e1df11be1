package dto

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/utils"
)

// CreateAdjustmentRequest defines the data needed to record an adjustment on a parcel.
type CreateAdjustmentRequest struct {
	Kind        string          `json:"kind" binding:"required,oneof=payment surcharge discount"`
	Amount      decimal.Decimal `json:"amount" binding:"dgt0,money"`
	Description string          `json:"description" binding:"max=500"`
}

// ParcelResponse is a parcel flattened with its ledger summary.
type ParcelResponse struct {
	ParcelID        string              `json:"parcelID"`
	SaleID          string              `json:"saleID"`
	Number          int                 `json:"number"`
	Customer        string              `json:"customer"`
	Device          string              `json:"device"`
	DueDate         civil.Date          `json:"dueDate"`
	OriginalValue   decimal.Decimal     `json:"originalValue"`
	Paid            decimal.Decimal     `json:"paid"`
	Surcharge       decimal.Decimal     `json:"surcharge"`
	Discount        decimal.Decimal     `json:"discount"`
	Balance         decimal.Decimal     `json:"balance"`
	BalanceDisplay  string              `json:"balanceDisplay"`
	OverdueDays     int                 `json:"overdueDays"`
	Interest        decimal.Decimal     `json:"interest"`
	InterestDisplay string              `json:"interestDisplay"`
	Status          domain.ParcelStatus `json:"status"`
}

// AdjustmentOutcomeResponse is returned after recording an adjustment.
type AdjustmentOutcomeResponse struct {
	Adjustment   domain.Adjustment `json:"adjustment"`
	Parcel       ParcelResponse    `json:"parcel"`
	SaleArchived bool              `json:"saleArchived"`
}

// ToParcelResponse converts a domain.ParcelView.
func ToParcelResponse(v domain.ParcelView) ParcelResponse {
	return ParcelResponse{
		ParcelID:        v.Parcel.ParcelID,
		SaleID:          v.Parcel.SaleID,
		Number:          v.Parcel.Number,
		Customer:        v.Customer,
		Device:          v.Device,
		DueDate:         v.Parcel.DueDate,
		OriginalValue:   v.Summary.OriginalValue,
		Paid:            v.Summary.Paid,
		Surcharge:       v.Summary.Surcharge,
		Discount:        v.Summary.Discount,
		Balance:         v.Summary.Balance,
		BalanceDisplay:  utils.FormatBRL(v.Summary.Balance),
		OverdueDays:     v.Summary.OverdueDays,
		Interest:        v.Summary.Interest,
		InterestDisplay: utils.FormatBRL(v.Summary.Interest),
		Status:          v.Summary.Status,
	}
}

// ToParcelResponses converts a slice of parcel views.
func ToParcelResponses(views []domain.ParcelView) []ParcelResponse {
	out := make([]ParcelResponse, len(views))
	for i, v := range views {
		out[i] = ToParcelResponse(v)
	}
	return out
}
