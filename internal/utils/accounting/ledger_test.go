package accounting_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/utils/accounting"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func adj(kind domain.AdjustmentKind, amount string) domain.Adjustment {
	return domain.Adjustment{ParcelID: "p1", Kind: kind, Amount: dec(amount), CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
}

func TestLedger_Summarize(t *testing.T) {
	today := date(2024, 3, 10)
	ledger := accounting.NewLedger(today, accounting.DefaultDailyFine)

	tests := []struct {
		name        string
		original    string
		due         civil.Date
		adjustments []domain.Adjustment
		balance     string
		overdueDays int
		interest    string
		status      domain.ParcelStatus
	}{
		{
			name:     "no adjustments, not yet due",
			original: "100.00",
			due:      date(2024, 3, 15),
			balance:  "100", interest: "0", status: domain.ParcelCurrent,
		},
		{
			name:     "due today is not overdue",
			original: "100.00",
			due:      today,
			balance:  "100", interest: "0", status: domain.ParcelCurrent,
		},
		{
			name:        "overdue with partial payment",
			original:    "100.00",
			due:         date(2024, 3, 1),
			adjustments: []domain.Adjustment{adj(domain.AdjustmentPayment, "40")},
			balance:     "60", overdueDays: 9, interest: "35.1", status: domain.ParcelOverdue,
		},
		{
			name:        "fully paid long ago past due is never overdue",
			original:    "100.00",
			due:         date(2023, 1, 1),
			adjustments: []domain.Adjustment{adj(domain.AdjustmentPayment, "100")},
			balance:     "0", interest: "0", status: domain.ParcelPaid,
		},
		{
			name:     "surcharge and discount",
			original: "100.00",
			due:      date(2024, 4, 1),
			adjustments: []domain.Adjustment{
				adj(domain.AdjustmentSurcharge, "15.50"),
				adj(domain.AdjustmentDiscount, "5.25"),
				adj(domain.AdjustmentPayment, "10"),
			},
			balance: "100.25", interest: "0", status: domain.ParcelCurrent,
		},
		{
			name:        "overpayment is paid with negative balance",
			original:    "50",
			due:         date(2024, 1, 1),
			adjustments: []domain.Adjustment{adj(domain.AdjustmentPayment, "60")},
			balance:     "-10", interest: "0", status: domain.ParcelPaid,
		},
		{
			name:        "rounds derived balance to cents",
			original:    "33.333",
			due:         date(2024, 4, 1),
			adjustments: []domain.Adjustment{adj(domain.AdjustmentPayment, "0.001")},
			balance:     "33.33", interest: "0", status: domain.ParcelCurrent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parcel := domain.Parcel{ParcelID: "p1", OriginalValue: dec(tt.original), DueDate: tt.due}
			got := ledger.Summarize(parcel, tt.adjustments)

			assert.True(t, dec(tt.balance).Equal(got.Balance), "balance: got %s", got.Balance)
			assert.Equal(t, tt.overdueDays, got.OverdueDays)
			assert.True(t, dec(tt.interest).Equal(got.Interest), "interest: got %s", got.Interest)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, got.Status == domain.ParcelPaid, !got.Balance.GreaterThan(decimal.Zero))
		})
	}
}

func TestLedger_BalanceMonotonic(t *testing.T) {
	ledger := accounting.NewLedger(date(2024, 3, 10), accounting.DefaultDailyFine)
	parcel := domain.Parcel{ParcelID: "p1", OriginalValue: dec("200"), DueDate: date(2024, 2, 1)}

	previous := ledger.Summarize(parcel, nil).Balance
	var adjustments []domain.Adjustment
	for i := 0; i < 5; i++ {
		adjustments = append(adjustments, adj(domain.AdjustmentPayment, "30"))
		current := ledger.Summarize(parcel, adjustments).Balance
		assert.True(t, current.LessThanOrEqual(previous))
		previous = current
	}

	withSurcharge := ledger.Summarize(parcel, append(adjustments, adj(domain.AdjustmentSurcharge, "12"))).Balance
	assert.True(t, withSurcharge.GreaterThanOrEqual(previous))
}

func TestLedger_CustomDailyFine(t *testing.T) {
	ledger := accounting.NewLedger(date(2024, 3, 11), dec("2"))
	parcel := domain.Parcel{ParcelID: "p1", OriginalValue: dec("10"), DueDate: date(2024, 3, 1)}

	got := ledger.Summarize(parcel, nil)

	assert.Equal(t, 10, got.OverdueDays)
	assert.True(t, dec("20").Equal(got.Interest))
	assert.True(t, dec("10").Equal(got.Balance), "interest never touches the balance")
}

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, domain.ParcelPaid, accounting.DeriveStatus(decimal.Zero, 0))
	assert.Equal(t, domain.ParcelPaid, accounting.DeriveStatus(dec("-1"), 5))
	assert.Equal(t, domain.ParcelOverdue, accounting.DeriveStatus(dec("0.01"), 1))
	assert.Equal(t, domain.ParcelCurrent, accounting.DeriveStatus(dec("0.01"), 0))
}

func TestLedger_IsFullyPaid(t *testing.T) {
	ledger := accounting.NewLedger(date(2024, 3, 10), accounting.DefaultDailyFine)
	parcels := []domain.Parcel{
		{ParcelID: "a", OriginalValue: dec("100")},
		{ParcelID: "b", OriginalValue: dec("50")},
	}
	adjustments := map[string][]domain.Adjustment{
		"a": {{ParcelID: "a", Kind: domain.AdjustmentPayment, Amount: dec("100")}},
	}

	assert.False(t, ledger.IsFullyPaid(parcels, adjustments))

	adjustments["b"] = []domain.Adjustment{{ParcelID: "b", Kind: domain.AdjustmentDiscount, Amount: dec("50")}}
	assert.True(t, ledger.IsFullyPaid(parcels, adjustments))
}
