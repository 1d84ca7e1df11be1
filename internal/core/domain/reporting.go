package domain

import (
	"github.com/shopspring/decimal"
)

// MonthlySummaryRow aggregates the sales registered in one calendar month.
type MonthlySummaryRow struct {
	Month       string          `json:"month"` // YYYY-MM
	SalesCount  int             `json:"salesCount"`
	SoldValue   decimal.Decimal `json:"soldValue"`
	Received    decimal.Decimal `json:"received"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Overdue     decimal.Decimal `json:"overdue"`
}

// CriticalCustomer groups the overdue parcels of one sale.
type CriticalCustomer struct {
	SaleID             string          `json:"saleID"`
	Customer           string          `json:"customer"`
	OverdueParcels     int             `json:"overdueParcels"`
	OverdueAmount      decimal.Decimal `json:"overdueAmount"`
	MaxOverdueDays     int             `json:"maxOverdueDays"`
	InformationalFines decimal.Decimal `json:"informationalFines"`
}

// HealthSummary is the portfolio-wide picture over all live parcels.
type HealthSummary struct {
	TotalSold        decimal.Decimal `json:"totalSold"`
	TotalReceived    decimal.Decimal `json:"totalReceived"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	Overdue          decimal.Decimal `json:"overdue"`
	FutureReceivable decimal.Decimal `json:"futureReceivable"`
	DailyFine        decimal.Decimal `json:"dailyFine"`
}
