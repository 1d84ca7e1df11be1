package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// ClosureReason is the enumerated reason for an administrative write-off.
type ClosureReason string

const (
	ReasonUnreachable        ClosureReason = "default_unreachable"
	ReasonFinancialAgreement ClosureReason = "financial_agreement"
	ReasonDeviceReturned     ClosureReason = "device_returned"
	ReasonDeviceExchanged    ClosureReason = "device_exchanged"
	ReasonCancelledWithLoss  ClosureReason = "cancelled_with_loss"
)

var closureReasonLabels = map[ClosureReason]string{
	ReasonUnreachable:        "Inadimplência (cliente inacessível)",
	ReasonFinancialAgreement: "Acordo financeiro",
	ReasonDeviceReturned:     "Devolução do aparelho",
	ReasonDeviceExchanged:    "Troca de aparelho",
	ReasonCancelledWithLoss:  "Cancelamento com perda",
}

// ClosureReasons lists the accepted reasons in display order.
func ClosureReasons() []ClosureReason {
	return []ClosureReason{
		ReasonUnreachable,
		ReasonFinancialAgreement,
		ReasonDeviceReturned,
		ReasonDeviceExchanged,
		ReasonCancelledWithLoss,
	}
}

// IsValid reports whether r belongs to the enumerated reason set.
func (r ClosureReason) IsValid() bool {
	_, ok := closureReasonLabels[r]
	return ok
}

// Label is the operator-facing text recorded with the closure.
func (r ClosureReason) Label() string {
	return closureReasonLabels[r]
}

// ParseClosureReason accepts either the reason key or its label.
func ParseClosureReason(s string) (ClosureReason, bool) {
	if r := ClosureReason(s); r.IsValid() {
		return r, true
	}
	for r, label := range closureReasonLabels {
		if label == s {
			return r, true
		}
	}
	return "", false
}

// ClosedSaleRecord is the immutable snapshot written when a sale is written off.
type ClosedSaleRecord struct {
	SaleID        string          `json:"saleID"`
	Customer      string          `json:"customer"`
	Device        string          `json:"device"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	ReceivedValue decimal.Decimal `json:"receivedValue"`
	LostValue     decimal.Decimal `json:"lostValue"`
	SaleDate      civil.Date      `json:"saleDate"`
	CreatedAt     time.Time       `json:"createdAt"`
	ClosedAt      time.Time       `json:"closedAt"`
	Reason        string          `json:"reason"`
}

// ClosurePreview is the read-only financial picture shown before a write-off is confirmed.
type ClosurePreview struct {
	SaleID        string          `json:"saleID"`
	Customer      string          `json:"customer"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	ReceivedValue decimal.Decimal `json:"receivedValue"`
	OpenBalance   decimal.Decimal `json:"openBalance"`
	LostValue     decimal.Decimal `json:"lostValue"`
}
