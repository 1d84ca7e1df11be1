package accounting

import (
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/utils/dates"
)

// Portfolio is a read snapshot of the store used by the reporting folds.
// Parcels and Adjustments are the live (active sale) rows; ArchivedAdjustments belong to archived
// sales and only count towards received amounts.
type Portfolio struct {
	ActiveSales         []domain.Sale
	ArchivedSales       []domain.Sale
	Parcels             []domain.Parcel
	Adjustments         []domain.Adjustment
	ArchivedAdjustments []domain.Adjustment
}

// AllSales returns active and archived sales.
func (p Portfolio) AllSales() []domain.Sale {
	all := make([]domain.Sale, 0, len(p.ActiveSales)+len(p.ArchivedSales))
	all = append(all, p.ActiveSales...)
	return append(all, p.ArchivedSales...)
}

// AllAdjustments returns every adjustment ever recorded that still exists (live and archived).
func (p Portfolio) AllAdjustments() []domain.Adjustment {
	all := make([]domain.Adjustment, 0, len(p.Adjustments)+len(p.ArchivedAdjustments))
	all = append(all, p.Adjustments...)
	return append(all, p.ArchivedAdjustments...)
}

// ParcelViews summarizes every live parcel, ordered by due date and parcel number.
func (l Ledger) ParcelViews(p Portfolio) []domain.ParcelView {
	salesByID := make(map[string]domain.Sale, len(p.ActiveSales))
	for _, s := range p.AllSales() {
		salesByID[s.SaleID] = s
	}
	byParcel := GroupByParcel(p.Adjustments)

	views := make([]domain.ParcelView, 0, len(p.Parcels))
	for _, parcel := range p.Parcels {
		sale := salesByID[parcel.SaleID]
		views = append(views, domain.ParcelView{
			Parcel:   parcel,
			Customer: sale.Customer,
			Device:   sale.Device,
			Summary:  l.Summarize(parcel, byParcel[parcel.ParcelID]),
		})
	}
	SortParcelViews(views)
	return views
}

// SortParcelViews orders views by due date, then parcel number.
func SortParcelViews(views []domain.ParcelView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].Parcel, views[j].Parcel
		if a.DueDate != b.DueDate {
			return a.DueDate.Before(b.DueDate)
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.ParcelID < b.ParcelID
	})
}

// FilterByCustomer keeps views whose customer contains term, case-insensitively.
func FilterByCustomer(views []domain.ParcelView, term string) []domain.ParcelView {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return views
	}
	return filterViews(views, func(v domain.ParcelView) bool {
		return strings.Contains(strings.ToLower(v.Customer), term)
	})
}

// OpenParcels keeps views with a positive balance.
func OpenParcels(views []domain.ParcelView) []domain.ParcelView {
	return filterViews(views, func(v domain.ParcelView) bool { return v.Summary.IsOpen() })
}

// OverdueParcels keeps views whose status is Overdue.
func OverdueParcels(views []domain.ParcelView) []domain.ParcelView {
	return filterViews(views, func(v domain.ParcelView) bool { return v.Summary.Status == domain.ParcelOverdue })
}

// DueInMonth keeps views whose due date falls in the given month.
func DueInMonth(views []domain.ParcelView, year int, month time.Month) []domain.ParcelView {
	return filterViews(views, func(v domain.ParcelView) bool { return dates.SameMonth(v.Parcel.DueDate, year, month) })
}

// CriticalCustomers aggregates overdue parcels per sale. A sale is listed iff at least one of its
// parcels is Overdue. The most delinquent sales come first.
func CriticalCustomers(views []domain.ParcelView) []domain.CriticalCustomer {
	bySale := make(map[string]*domain.CriticalCustomer)
	order := make([]string, 0)

	for _, v := range OverdueParcels(views) {
		cc, ok := bySale[v.Parcel.SaleID]
		if !ok {
			cc = &domain.CriticalCustomer{
				SaleID:             v.Parcel.SaleID,
				Customer:           v.Customer,
				OverdueAmount:      decimal.Zero,
				InformationalFines: decimal.Zero,
			}
			bySale[v.Parcel.SaleID] = cc
			order = append(order, v.Parcel.SaleID)
		}
		cc.OverdueParcels++
		cc.OverdueAmount = cc.OverdueAmount.Add(v.Summary.Balance)
		cc.InformationalFines = cc.InformationalFines.Add(v.Summary.Interest)
		if v.Summary.OverdueDays > cc.MaxOverdueDays {
			cc.MaxOverdueDays = v.Summary.OverdueDays
		}
	}

	result := make([]domain.CriticalCustomer, 0, len(order))
	for _, id := range order {
		cc := bySale[id]
		cc.OverdueAmount = domain.RoundMoney(cc.OverdueAmount)
		cc.InformationalFines = domain.RoundMoney(cc.InformationalFines)
		result = append(result, *cc)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].MaxOverdueDays != result[j].MaxOverdueDays {
			return result[i].MaxOverdueDays > result[j].MaxOverdueDays
		}
		return result[i].OverdueAmount.GreaterThan(result[j].OverdueAmount)
	})
	return result
}

// SalesInWindow returns active and archived sales whose sale date is in [start, end].
func SalesInWindow(p Portfolio, start, end civil.Date) []domain.Sale {
	var out []domain.Sale
	for _, s := range p.AllSales() {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			out = append(out, s)
		}
	}
	return out
}

// SalesInMonth returns active and archived sales registered in the given month, newest first.
func SalesInMonth(p Portfolio, year int, month time.Month) []domain.Sale {
	first, last := dates.MonthBounds(year, month)
	sales := SalesInWindow(p, first, last)
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].SaleDate.After(sales[j].SaleDate) })
	return sales
}

// MonthlySummary groups the sales of [start, end] by the month of their sale date. Received counts
// every payment whose timestamp falls in the month; outstanding and overdue sum the open balances of
// the parcels belonging to the month's sales.
func MonthlySummary(p Portfolio, views []domain.ParcelView, start, end civil.Date) []domain.MonthlySummaryRow {
	sales := SalesInWindow(p, start, end)

	rows := make(map[string]*domain.MonthlySummaryRow)
	saleMonth := make(map[string]string, len(sales))
	for _, s := range sales {
		key := s.MonthKey()
		row, ok := rows[key]
		if !ok {
			row = &domain.MonthlySummaryRow{
				Month:       key,
				SoldValue:   decimal.Zero,
				Received:    decimal.Zero,
				Outstanding: decimal.Zero,
				Overdue:     decimal.Zero,
			}
			rows[key] = row
		}
		row.SalesCount++
		row.SoldValue = row.SoldValue.Add(s.TotalValue)
		saleMonth[s.SaleID] = key
	}

	for _, a := range p.AllAdjustments() {
		if a.Kind != domain.AdjustmentPayment {
			continue
		}
		if row, ok := rows[domain.MonthKeyOf(civil.DateOf(a.CreatedAt.UTC()))]; ok {
			row.Received = row.Received.Add(a.Amount)
		}
	}

	for _, v := range views {
		key, ok := saleMonth[v.Parcel.SaleID]
		if !ok || !v.Summary.IsOpen() {
			continue
		}
		row := rows[key]
		row.Outstanding = row.Outstanding.Add(v.Summary.Balance)
		if v.Summary.Status == domain.ParcelOverdue {
			row.Overdue = row.Overdue.Add(v.Summary.Balance)
		}
	}

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]domain.MonthlySummaryRow, 0, len(keys))
	for _, k := range keys {
		row := rows[k]
		row.SoldValue = domain.RoundMoney(row.SoldValue)
		row.Received = domain.RoundMoney(row.Received)
		row.Outstanding = domain.RoundMoney(row.Outstanding)
		row.Overdue = domain.RoundMoney(row.Overdue)
		result = append(result, *row)
	}
	return result
}

// Health computes the portfolio-wide totals over all live parcels.
func (l Ledger) Health(p Portfolio, views []domain.ParcelView) domain.HealthSummary {
	sold := decimal.Zero
	for _, s := range p.AllSales() {
		sold = sold.Add(s.TotalValue)
	}

	outstanding, overdue, future := decimal.Zero, decimal.Zero, decimal.Zero
	for _, v := range views {
		if !v.Summary.IsOpen() {
			continue
		}
		outstanding = outstanding.Add(v.Summary.Balance)
		if v.Parcel.DueDate.Before(l.Today) {
			overdue = overdue.Add(v.Summary.Balance)
		} else {
			future = future.Add(v.Summary.Balance)
		}
	}

	return domain.HealthSummary{
		TotalSold:        domain.RoundMoney(sold),
		TotalReceived:    domain.RoundMoney(TotalPayments(p.AllAdjustments())),
		Outstanding:      domain.RoundMoney(outstanding),
		Overdue:          domain.RoundMoney(overdue),
		FutureReceivable: domain.RoundMoney(future),
		DailyFine:        l.DailyFine,
	}
}

func filterViews(views []domain.ParcelView, keep func(domain.ParcelView) bool) []domain.ParcelView {
	out := make([]domain.ParcelView, 0)
	for _, v := range views {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
