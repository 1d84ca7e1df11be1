package handlers

import (
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	portssvc "github.com/bestcell/bestsystem_backend/internal/core/ports/services"
	"github.com/bestcell/bestsystem_backend/internal/dto"
	"github.com/bestcell/bestsystem_backend/internal/middleware"
	"github.com/bestcell/bestsystem_backend/internal/reports/xlsx"
	"github.com/bestcell/bestsystem_backend/internal/utils/dates"
)

// reportingHandler handles the read-only report endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	location         *time.Location
	now              func() time.Time
}

func newReportingHandler(rs portssvc.ReportingSvcFacade, loc *time.Location) *reportingHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &reportingHandler{reportingService: rs, location: loc, now: time.Now}
}

// registerReportingRoutes registers the report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, loc *time.Location) {
	h := newReportingHandler(reportingService, loc)

	reports := rg.Group("/reports")
	{
		reports.GET("/monthly", h.monthlySummary)
		reports.GET("/monthly/export", h.exportMonthlySummary)
		reports.GET("/sales-of-month", h.salesOfMonth)
		reports.GET("/due-in-month", h.parcelsDueInMonth)
		reports.GET("/open-parcels", h.openParcels)
		reports.GET("/overdue", h.overdueParcels)
		reports.GET("/critical-customers", h.criticalCustomers)
		reports.GET("/health", h.healthSummary)
	}
}

func (h *reportingHandler) bindRange(c *gin.Context) (civil.Date, civil.Date, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, err)
		return civil.Date{}, civil.Date{}, false
	}
	from, err := dates.NormalizeDate(q.From)
	if err != nil {
		respondError(c, logger, err, "Invalid start date")
		return civil.Date{}, civil.Date{}, false
	}
	to, err := dates.NormalizeDate(q.To)
	if err != nil {
		respondError(c, logger, err, "Invalid end date")
		return civil.Date{}, civil.Date{}, false
	}
	return from, to, true
}

// bindMonth reads year and month, defaulting each to the current one.
func (h *reportingHandler) bindMonth(c *gin.Context) (int, time.Month, bool) {
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err)
		return 0, 0, false
	}
	today := dates.Today(h.now(), h.location)
	year, month := today.Year, today.Month
	if q.Year != 0 {
		year = q.Year
	}
	if q.Month != 0 {
		month = time.Month(q.Month)
	}
	return year, month, true
}

// monthlySummary godoc
// @Summary Monthly sales summary
// @Description Groups the sales of the period by month with sold, received, outstanding and overdue values.
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.MonthlySummaryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) monthlySummary(c *gin.Context) {
	from, to, ok := h.bindRange(c)
	if !ok {
		return
	}
	rows, err := h.reportingService.MonthlySummary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to build monthly summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(from, to, rows))
}

// exportMonthlySummary godoc
// @Summary Export the monthly summary as XLSX
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly/export [get]
func (h *reportingHandler) exportMonthlySummary(c *gin.Context) {
	from, to, ok := h.bindRange(c)
	if !ok {
		return
	}
	data, err := h.reportingService.ExportMonthlySummary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to export monthly summary")
		return
	}
	filename := fmt.Sprintf("resumo_mensal_%s_%s.xlsx", from, to)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsx.ContentType, data)
}

// salesOfMonth godoc
// @Summary Sales registered in a month
// @Tags reports
// @Produce json
// @Param year query int false "Year (default current)"
// @Param month query int false "Month 1-12 (default current)"
// @Success 200 {array} dto.SaleResponse
// @Security BearerAuth
// @Router /reports/sales-of-month [get]
func (h *reportingHandler) salesOfMonth(c *gin.Context) {
	year, month, ok := h.bindMonth(c)
	if !ok {
		return
	}
	sales, err := h.reportingService.SalesOfMonth(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to list sales of month")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponses(sales))
}

// parcelsDueInMonth godoc
// @Summary Live parcels due in a month
// @Tags reports
// @Produce json
// @Param year query int false "Year (default current)"
// @Param month query int false "Month 1-12 (default current)"
// @Success 200 {array} dto.ParcelResponse
// @Security BearerAuth
// @Router /reports/due-in-month [get]
func (h *reportingHandler) parcelsDueInMonth(c *gin.Context) {
	year, month, ok := h.bindMonth(c)
	if !ok {
		return
	}
	views, err := h.reportingService.ParcelsDueInMonth(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to list parcels due in month")
		return
	}
	c.JSON(http.StatusOK, dto.ToParcelResponses(views))
}

// openParcels godoc
// @Summary Live parcels with an open balance
// @Tags reports
// @Produce json
// @Success 200 {array} dto.ParcelResponse
// @Security BearerAuth
// @Router /reports/open-parcels [get]
func (h *reportingHandler) openParcels(c *gin.Context) {
	views, err := h.reportingService.OpenParcels(c.Request.Context())
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to list open parcels")
		return
	}
	c.JSON(http.StatusOK, dto.ToParcelResponses(views))
}

// overdueParcels godoc
// @Summary Overdue live parcels
// @Tags reports
// @Produce json
// @Success 200 {array} dto.ParcelResponse
// @Security BearerAuth
// @Router /reports/overdue [get]
func (h *reportingHandler) overdueParcels(c *gin.Context) {
	views, err := h.reportingService.OverdueParcels(c.Request.Context())
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to list overdue parcels")
		return
	}
	c.JSON(http.StatusOK, dto.ToParcelResponses(views))
}

// criticalCustomers godoc
// @Summary Sales with overdue parcels, most overdue first
// @Tags reports
// @Produce json
// @Success 200 {array} domain.CriticalCustomer
// @Security BearerAuth
// @Router /reports/critical-customers [get]
func (h *reportingHandler) criticalCustomers(c *gin.Context) {
	critical, err := h.reportingService.CriticalCustomers(c.Request.Context())
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to list critical customers")
		return
	}
	c.JSON(http.StatusOK, critical)
}

// healthSummary godoc
// @Summary Portfolio health totals
// @Tags reports
// @Produce json
// @Success 200 {object} dto.HealthSummaryResponse
// @Security BearerAuth
// @Router /reports/health [get]
func (h *reportingHandler) healthSummary(c *gin.Context) {
	health, err := h.reportingService.HealthSummary(c.Request.Context())
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to compute health summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToHealthSummaryResponse(*health))
}
