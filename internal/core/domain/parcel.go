package domain

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Parcel is one scheduled payment obligation of a sale. Number 0 is the down payment (or the full
// cash price) and is paid at creation time.
type Parcel struct {
	ParcelID      string          `json:"parcelID"`
	SaleID        string          `json:"saleID"`
	Number        int             `json:"number"`
	OriginalValue decimal.Decimal `json:"originalValue"`
	DueDate       civil.Date      `json:"dueDate"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ParcelStatus is derived from balance and overdue days on every read.
type ParcelStatus string

const (
	ParcelPaid    ParcelStatus = "Paid"
	ParcelOverdue ParcelStatus = "Overdue"
	ParcelCurrent ParcelStatus = "Current"
)

// ParcelSummary is the financial state of a parcel folded from its adjustments.
// Interest is informational only and never part of Balance.
type ParcelSummary struct {
	ParcelID      string          `json:"parcelID"`
	OriginalValue decimal.Decimal `json:"originalValue"`
	Paid          decimal.Decimal `json:"paid"`
	Surcharge     decimal.Decimal `json:"surcharge"`
	Discount      decimal.Decimal `json:"discount"`
	Balance       decimal.Decimal `json:"balance"`
	OverdueDays   int             `json:"overdueDays"`
	Interest      decimal.Decimal `json:"interest"`
	Status        ParcelStatus    `json:"status"`
}

// IsOpen reports whether something is still owed on the parcel.
func (s ParcelSummary) IsOpen() bool {
	return s.Balance.GreaterThan(decimal.Zero)
}

// ParcelView joins a parcel with its owning sale's customer data and its summary.
type ParcelView struct {
	Parcel   Parcel        `json:"parcel"`
	Customer string        `json:"customer"`
	Device   string        `json:"device"`
	Summary  ParcelSummary `json:"summary"`
}

// MonthKeyOf returns the YYYY-MM bucket of a calendar date.
func MonthKeyOf(d civil.Date) string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}
