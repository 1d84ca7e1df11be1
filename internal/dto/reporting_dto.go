package dto

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/utils"
)

// DateRangeQuery is the inclusive window of the monthly report. Dates are YYYY-MM-DD.
type DateRangeQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// MonthQuery selects a reference month. Zero values mean the current month.
type MonthQuery struct {
	Year  int `form:"year" binding:"omitempty,min=1900,max=9999"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// MonthlySummaryResponse represents the monthly report response
type MonthlySummaryResponse struct {
	From   civil.Date                 `json:"from"`
	To     civil.Date                 `json:"to"`
	Rows   []domain.MonthlySummaryRow `json:"rows"`
	Totals struct {
		SalesCount  int             `json:"salesCount"`
		SoldValue   decimal.Decimal `json:"soldValue"`
		Received    decimal.Decimal `json:"received"`
		Outstanding decimal.Decimal `json:"outstanding"`
		Overdue     decimal.Decimal `json:"overdue"`
	} `json:"totals"`
}

// HealthSummaryResponse represents the portfolio health response
type HealthSummaryResponse struct {
	domain.HealthSummary
	Display map[string]string `json:"display"`
}

// ToMonthlySummaryResponse builds the report response with column totals.
func ToMonthlySummaryResponse(from, to civil.Date, rows []domain.MonthlySummaryRow) MonthlySummaryResponse {
	resp := MonthlySummaryResponse{From: from, To: to, Rows: rows}
	resp.Totals.SoldValue = decimal.Zero
	resp.Totals.Received = decimal.Zero
	resp.Totals.Outstanding = decimal.Zero
	resp.Totals.Overdue = decimal.Zero
	for _, r := range rows {
		resp.Totals.SalesCount += r.SalesCount
		resp.Totals.SoldValue = resp.Totals.SoldValue.Add(r.SoldValue)
		resp.Totals.Received = resp.Totals.Received.Add(r.Received)
		resp.Totals.Outstanding = resp.Totals.Outstanding.Add(r.Outstanding)
		resp.Totals.Overdue = resp.Totals.Overdue.Add(r.Overdue)
	}
	return resp
}

// ToHealthSummaryResponse adds currency renderings to the health summary.
func ToHealthSummaryResponse(h domain.HealthSummary) HealthSummaryResponse {
	return HealthSummaryResponse{
		HealthSummary: h,
		Display: map[string]string{
			"totalSold":        utils.FormatBRL(h.TotalSold),
			"totalReceived":    utils.FormatBRL(h.TotalReceived),
			"outstanding":      utils.FormatBRL(h.Outstanding),
			"overdue":          utils.FormatBRL(h.Overdue),
			"futureReceivable": utils.FormatBRL(h.FutureReceivable),
			"dailyFine":        utils.FormatBRL(h.DailyFine),
		},
	}
}
