package accounting

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
)

// DefaultDailyFine is the informational fine per overdue day, in currency units.
var DefaultDailyFine = decimal.RequireFromString("3.90")

// Ledger folds adjustment events into parcel summaries as of a given day.
type Ledger struct {
	Today     civil.Date
	DailyFine decimal.Decimal
}

// NewLedger creates a Ledger for today with the given daily fine.
func NewLedger(today civil.Date, dailyFine decimal.Decimal) Ledger {
	return Ledger{Today: today, DailyFine: dailyFine}
}

// Summarize computes the financial state of a parcel from its adjustments.
//
//	balance  = round(original + surcharge - discount - paid, 2)
//	overdue  = max(today - due, 0) days, only while balance > 0
//	interest = round(overdue * daily fine, 2), never added to balance
func (l Ledger) Summarize(p domain.Parcel, adjustments []domain.Adjustment) domain.ParcelSummary {
	paid, surcharge, discount := SumAdjustments(adjustments)

	balance := domain.RoundMoney(p.OriginalValue.Add(surcharge).Sub(discount).Sub(paid))

	overdueDays := 0
	if balance.GreaterThan(decimal.Zero) {
		if days := l.Today.DaysSince(p.DueDate); days > 0 {
			overdueDays = days
		}
	}

	return domain.ParcelSummary{
		ParcelID:      p.ParcelID,
		OriginalValue: domain.RoundMoney(p.OriginalValue),
		Paid:          domain.RoundMoney(paid),
		Surcharge:     domain.RoundMoney(surcharge),
		Discount:      domain.RoundMoney(discount),
		Balance:       balance,
		OverdueDays:   overdueDays,
		Interest:      domain.RoundMoney(l.DailyFine.Mul(decimal.NewFromInt(int64(overdueDays)))),
		Status:        DeriveStatus(balance, overdueDays),
	}
}

// SumAdjustments totals the adjustments per kind.
func SumAdjustments(adjustments []domain.Adjustment) (paid, surcharge, discount decimal.Decimal) {
	paid, surcharge, discount = decimal.Zero, decimal.Zero, decimal.Zero
	for _, a := range adjustments {
		switch a.Kind {
		case domain.AdjustmentPayment:
			paid = paid.Add(a.Amount)
		case domain.AdjustmentSurcharge:
			surcharge = surcharge.Add(a.Amount)
		case domain.AdjustmentDiscount:
			discount = discount.Add(a.Amount)
		}
	}
	return paid, surcharge, discount
}

// DeriveStatus is a pure function of balance and overdue days.
func DeriveStatus(balance decimal.Decimal, overdueDays int) domain.ParcelStatus {
	switch {
	case balance.LessThanOrEqual(decimal.Zero):
		return domain.ParcelPaid
	case overdueDays > 0:
		return domain.ParcelOverdue
	default:
		return domain.ParcelCurrent
	}
}

// IsFullyPaid reports whether every parcel of a sale has a balance <= 0. adjustmentsByParcel must
// hold the adjustments of the given parcels.
func (l Ledger) IsFullyPaid(parcels []domain.Parcel, adjustmentsByParcel map[string][]domain.Adjustment) bool {
	for _, p := range parcels {
		if l.Summarize(p, adjustmentsByParcel[p.ParcelID]).IsOpen() {
			return false
		}
	}
	return true
}

// GroupByParcel indexes adjustments by parcel id, keeping their order.
func GroupByParcel(adjustments []domain.Adjustment) map[string][]domain.Adjustment {
	grouped := make(map[string][]domain.Adjustment)
	for _, a := range adjustments {
		grouped[a.ParcelID] = append(grouped[a.ParcelID], a)
	}
	return grouped
}

// TotalPayments sums the payment adjustments.
func TotalPayments(adjustments []domain.Adjustment) decimal.Decimal {
	paid, _, _ := SumAdjustments(adjustments)
	return paid
}
