package accounting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/utils/accounting"
)

// fixture: two active installment sales and one archived cash sale.
//
//	s1 (Ana, 2024-01-10): p10 down 100 paid, p11 due 02-10 value 50 unpaid, p12 due 03-10 value 50 paid 20
//	s2 (Bruno, 2024-02-05): p20 down 0, p21 due 03-05 value 80 unpaid
//	s3 (Carla, 2024-02-20, archived): cash 300, payment archived
func portfolio() accounting.Portfolio {
	at := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	return accounting.Portfolio{
		ActiveSales: []domain.Sale{
			{SaleID: "s1", Customer: "Ana Souza", Device: "Phone A", TotalValue: dec("200"), SaleDate: date(2024, 1, 10)},
			{SaleID: "s2", Customer: "Bruno Lima", Device: "Phone B", TotalValue: dec("80"), SaleDate: date(2024, 2, 5)},
		},
		ArchivedSales: []domain.Sale{
			{SaleID: "s3", Customer: "Carla", Device: "Phone C", TotalValue: dec("300"), SaleDate: date(2024, 2, 20), State: domain.SaleArchived},
		},
		Parcels: []domain.Parcel{
			{ParcelID: "p12", SaleID: "s1", Number: 2, OriginalValue: dec("50"), DueDate: date(2024, 3, 10)},
			{ParcelID: "p10", SaleID: "s1", Number: 0, OriginalValue: dec("100"), DueDate: date(2024, 1, 10)},
			{ParcelID: "p11", SaleID: "s1", Number: 1, OriginalValue: dec("50"), DueDate: date(2024, 2, 10)},
			{ParcelID: "p21", SaleID: "s2", Number: 1, OriginalValue: dec("80"), DueDate: date(2024, 3, 5)},
		},
		Adjustments: []domain.Adjustment{
			{ParcelID: "p10", Kind: domain.AdjustmentPayment, Amount: dec("100"), CreatedAt: at(2024, 1, 10)},
			{ParcelID: "p12", Kind: domain.AdjustmentPayment, Amount: dec("20"), CreatedAt: at(2024, 2, 15)},
		},
		ArchivedAdjustments: []domain.Adjustment{
			{ParcelID: "p30", Kind: domain.AdjustmentPayment, Amount: dec("300"), CreatedAt: at(2024, 2, 20)},
		},
	}
}

func TestParcelViews_OrderAndJoin(t *testing.T) {
	ledger := accounting.NewLedger(date(2024, 3, 8), accounting.DefaultDailyFine)
	views := ledger.ParcelViews(portfolio())

	require.Len(t, views, 4)
	assert.Equal(t, []string{"p10", "p11", "p21", "p12"}, []string{
		views[0].Parcel.ParcelID, views[1].Parcel.ParcelID, views[2].Parcel.ParcelID, views[3].Parcel.ParcelID,
	})
	assert.Equal(t, "Ana Souza", views[0].Customer)
	assert.Equal(t, "Phone B", views[2].Device)
}

func TestDrillDowns(t *testing.T) {
	ledger := accounting.NewLedger(date(2024, 3, 8), accounting.DefaultDailyFine)
	views := ledger.ParcelViews(portfolio())

	open := accounting.OpenParcels(views)
	assert.Len(t, open, 3)

	overdue := accounting.OverdueParcels(views)
	require.Len(t, overdue, 2)
	assert.Equal(t, "p11", overdue[0].Parcel.ParcelID)
	assert.Equal(t, "p21", overdue[1].Parcel.ParcelID)

	due := accounting.DueInMonth(views, 2024, time.March)
	assert.Len(t, due, 2)

	filtered := accounting.FilterByCustomer(views, "  bruno ")
	require.Len(t, filtered, 1)
	assert.Equal(t, "s2", filtered[0].Parcel.SaleID)
	assert.Len(t, accounting.FilterByCustomer(views, ""), 4)
}

func TestCriticalCustomers(t *testing.T) {
	ledger := accounting.NewLedger(date(2024, 3, 8), accounting.DefaultDailyFine)
	critical := accounting.CriticalCustomers(ledger.ParcelViews(portfolio()))

	require.Len(t, critical, 2)
	// s1: p11 overdue 27 days; s2: p21 overdue 3 days.
	assert.Equal(t, "s1", critical[0].SaleID)
	assert.Equal(t, 1, critical[0].OverdueParcels)
	assert.Equal(t, 27, critical[0].MaxOverdueDays)
	assert.True(t, dec("50").Equal(critical[0].OverdueAmount))
	assert.True(t, dec("105.3").Equal(critical[0].InformationalFines))

	assert.Equal(t, "s2", critical[1].SaleID)
	assert.Equal(t, 3, critical[1].MaxOverdueDays)
}

func TestCriticalCustomers_EmptyWhenNothingOverdue(t *testing.T) {
	ledger := accounting.NewLedger(date(2024, 1, 1), accounting.DefaultDailyFine)
	assert.Empty(t, accounting.CriticalCustomers(ledger.ParcelViews(portfolio())))
}

func TestMonthlySummary(t *testing.T) {
	p := portfolio()
	ledger := accounting.NewLedger(date(2024, 3, 8), accounting.DefaultDailyFine)
	views := ledger.ParcelViews(p)

	rows := accounting.MonthlySummary(p, views, date(2024, 1, 1), date(2024, 2, 29))

	require.Len(t, rows, 2)

	jan := rows[0]
	assert.Equal(t, "2024-01", jan.Month)
	assert.Equal(t, 1, jan.SalesCount)
	assert.True(t, dec("200").Equal(jan.SoldValue))
	assert.True(t, dec("100").Equal(jan.Received))
	assert.True(t, dec("80").Equal(jan.Outstanding), "p11 50 + p12 30")
	assert.True(t, dec("50").Equal(jan.Overdue))

	feb := rows[1]
	assert.Equal(t, "2024-02", feb.Month)
	assert.Equal(t, 2, feb.SalesCount)
	assert.True(t, dec("380").Equal(feb.SoldValue))
	assert.True(t, dec("320").Equal(feb.Received), "payment on p12 plus archived cash payment")
	assert.True(t, dec("80").Equal(feb.Outstanding))
	assert.True(t, dec("80").Equal(feb.Overdue))
}

func TestMonthlySummary_WindowExcludesSales(t *testing.T) {
	p := portfolio()
	ledger := accounting.NewLedger(date(2024, 3, 8), accounting.DefaultDailyFine)

	rows := accounting.MonthlySummary(p, ledger.ParcelViews(p), date(2024, 2, 6), date(2024, 2, 29))

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].SalesCount)
	assert.True(t, dec("300").Equal(rows[0].SoldValue))
}

func TestSalesInMonth(t *testing.T) {
	sales := accounting.SalesInMonth(portfolio(), 2024, time.February)

	require.Len(t, sales, 2)
	assert.Equal(t, "s3", sales[0].SaleID)
	assert.Equal(t, "s2", sales[1].SaleID)
}

func TestHealth(t *testing.T) {
	p := portfolio()
	ledger := accounting.NewLedger(date(2024, 3, 8), accounting.DefaultDailyFine)

	health := ledger.Health(p, ledger.ParcelViews(p))

	assert.True(t, dec("580").Equal(health.TotalSold))
	assert.True(t, dec("420").Equal(health.TotalReceived))
	assert.True(t, dec("160").Equal(health.Outstanding))
	assert.True(t, dec("130").Equal(health.Overdue))
	assert.True(t, dec("30").Equal(health.FutureReceivable))
	assert.True(t, decimal.RequireFromString("3.90").Equal(health.DailyFine))
	assert.True(t, health.Overdue.Add(health.FutureReceivable).Equal(health.Outstanding))
}

func TestMonthlySummary_OverpaymentDoesNotOffsetOpenBalances(t *testing.T) {
	p := accounting.Portfolio{
		ActiveSales: []domain.Sale{
			{SaleID: "s1", Customer: "Davi", TotalValue: dec("100"), SaleDate: date(2024, 4, 2)},
		},
		Parcels: []domain.Parcel{
			{ParcelID: "p1", SaleID: "s1", Number: 1, OriginalValue: dec("50"), DueDate: date(2024, 5, 2)},
			{ParcelID: "p2", SaleID: "s1", Number: 2, OriginalValue: dec("50"), DueDate: date(2024, 6, 2)},
		},
		Adjustments: []domain.Adjustment{
			{ParcelID: "p1", Kind: domain.AdjustmentPayment, Amount: dec("70"), CreatedAt: time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)},
		},
	}
	ledger := accounting.NewLedger(date(2024, 4, 30), accounting.DefaultDailyFine)
	views := ledger.ParcelViews(p)

	rows := accounting.MonthlySummary(p, views, date(2024, 4, 1), date(2024, 4, 30))

	require.Len(t, rows, 1)
	assert.True(t, dec("70").Equal(rows[0].Received))
	assert.True(t, dec("50").Equal(rows[0].Outstanding), "p1 credit of 20 is not netted against p2")
	assert.True(t, decimal.Zero.Equal(rows[0].Overdue))
}
