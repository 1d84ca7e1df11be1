package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentKind is the type of a financial event recorded against a parcel.
type AdjustmentKind string

const (
	AdjustmentPayment   AdjustmentKind = "payment"
	AdjustmentSurcharge AdjustmentKind = "surcharge"
	AdjustmentDiscount  AdjustmentKind = "discount"
)

// IsValid reports whether k is a known adjustment kind.
func (k AdjustmentKind) IsValid() bool {
	switch k {
	case AdjustmentPayment, AdjustmentSurcharge, AdjustmentDiscount:
		return true
	}
	return false
}

// Adjustment is an append-only event against a parcel. Amount is always positive; Kind decides its
// effect on the balance.
type Adjustment struct {
	AdjustmentID string          `json:"adjustmentID"`
	ParcelID     string          `json:"parcelID"`
	Kind         AdjustmentKind  `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// AdjustmentOutcome is returned after recording an adjustment.
type AdjustmentOutcome struct {
	Adjustment   Adjustment `json:"adjustment"`
	Parcel       ParcelView `json:"parcel"`
	SaleArchived bool       `json:"saleArchived"`
}
