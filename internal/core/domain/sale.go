package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// SaleType tells whether a sale was paid in full or split into installments.
type SaleType string

const (
	SaleTypeCash        SaleType = "cash"
	SaleTypeInstallment SaleType = "installment"
)

// IsValid reports whether t is a known sale type.
func (t SaleType) IsValid() bool {
	return t == SaleTypeCash || t == SaleTypeInstallment
}

// SaleState is the lifecycle state of a sale.
type SaleState string

const (
	SaleActive         SaleState = "active"
	SaleArchived       SaleState = "archived"
	SaleClosedCritical SaleState = "closed_critical"
)

// Sale is a registered sale. Active sales are open for adjustments; archived sales are fully paid
// and immutable.
type Sale struct {
	SaleID      string          `json:"saleID"`
	Customer    string          `json:"customer"`
	Device      string          `json:"device"`
	SaleType    SaleType        `json:"saleType"`
	DownPayment decimal.Decimal `json:"downPayment"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	SaleDate    civil.Date      `json:"saleDate"`
	CreatedAt   time.Time       `json:"createdAt"`
	State       SaleState       `json:"state"`
	ArchivedAt  *time.Time      `json:"archivedAt,omitempty"`
}

// MonthKey returns the YYYY-MM bucket of the sale date.
func (s Sale) MonthKey() string {
	return MonthKeyOf(s.SaleDate)
}

// SaleDetail is a sale together with the ledger view of each of its parcels.
type SaleDetail struct {
	Sale    Sale         `json:"sale"`
	Parcels []ParcelView `json:"parcels"`
}
