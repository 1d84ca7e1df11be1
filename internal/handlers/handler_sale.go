package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	portssvc "github.com/bestcell/bestsystem_backend/internal/core/ports/services"
	"github.com/bestcell/bestsystem_backend/internal/dto"
	"github.com/bestcell/bestsystem_backend/internal/middleware"
)

// saleHandler handles HTTP requests related to sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleID", h.getSale)
		sales.DELETE("/:saleID", h.deleteSale)
		sales.GET("/:saleID/paid", h.isFullyPaid)
		sales.POST("/:saleID/archive", h.archiveSale)
		sales.GET("/:saleID/closure-preview", h.previewClosure)
		sales.POST("/:saleID/close", h.closeSale)
	}
	rg.GET("/closed-sales", h.listClosedSales)
	rg.GET("/closure-reasons", h.listClosureReasons)
}

// createSale godoc
// @Summary Register a sale
// @Description Creates a cash or installment sale with its parcel schedule. Cash sales are archived immediately.
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleDetailResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	detail, err := h.saleService.CreateSale(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create sale")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSaleDetailResponse(*detail))
}

// listSales godoc
// @Summary List sales
// @Tags sales
// @Produce json
// @Param state query string false "active (default) or archived"
// @Success 200 {array} dto.SaleResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sales, err := h.saleService.ListSales(c.Request.Context(), domain.SaleState(c.Query("state")))
	if err != nil {
		respondError(c, logger, err, "Failed to list sales")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponses(sales))
}

// getSale godoc
// @Summary Get a sale with its parcels
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleDetailResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{saleID} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("sale_id", c.Param("saleID")))
	detail, err := h.saleService.GetSale(c.Request.Context(), c.Param("saleID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleDetailResponse(*detail))
}

// isFullyPaid godoc
// @Summary Whether every parcel of a sale is settled
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /sales/{saleID}/paid [get]
func (h *saleHandler) isFullyPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paid, err := h.saleService.IsSaleFullyPaid(c.Request.Context(), c.Param("saleID"))
	if err != nil {
		respondError(c, logger, err, "Failed to check sale")
		return
	}
	c.JSON(http.StatusOK, gin.H{"fullyPaid": paid})
}

// archiveSale godoc
// @Summary Archive a fully paid sale
// @Tags sales
// @Param saleID path string true "Sale ID"
// @Success 204
// @Failure 400 {object} ErrorResponse "Sale still has open parcels"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{saleID}/archive [post]
func (h *saleHandler) archiveSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.saleService.ArchiveSale(c.Request.Context(), c.Param("saleID")); err != nil {
		respondError(c, logger, err, "Failed to archive sale")
		return
	}
	c.Status(http.StatusNoContent)
}

// previewClosure godoc
// @Summary Preview a critical closure
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} domain.ClosurePreview
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{saleID}/closure-preview [get]
func (h *saleHandler) previewClosure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	preview, err := h.saleService.PreviewClosure(c.Request.Context(), c.Param("saleID"))
	if err != nil {
		respondError(c, logger, err, "Failed to preview closure")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// closeSale godoc
// @Summary Close a sale as a write-off
// @Description Records the loss snapshot and removes the sale with its parcels and adjustments.
// @Tags sales
// @Accept json
// @Produce json
// @Param saleID path string true "Sale ID"
// @Param closure body dto.CloseSaleRequest true "Closure reason"
// @Success 200 {object} dto.ClosedSaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{saleID}/close [post]
func (h *saleHandler) closeSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CloseSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	reason, _ := domain.ParseClosureReason(req.Reason)

	record, err := h.saleService.CloseSaleCritical(c.Request.Context(), c.Param("saleID"), reason)
	if err != nil {
		respondError(c, logger, err, "Failed to close sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToClosedSaleResponses([]domain.ClosedSaleRecord{*record})[0])
}

// deleteSale godoc
// @Summary Delete a sale permanently
// @Description Irreversible correction path. Requires confirm=true.
// @Tags sales
// @Param saleID path string true "Sale ID"
// @Param confirm query bool true "Must be true"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 428 {object} ErrorResponse "Confirmation required"
// @Security BearerAuth
// @Router /sales/{saleID} [delete]
func (h *saleHandler) deleteSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := h.saleService.DeleteSale(c.Request.Context(), c.Param("saleID"), confirmed); err != nil {
		respondError(c, logger, err, "Failed to delete sale")
		return
	}
	c.Status(http.StatusNoContent)
}

// listClosedSales godoc
// @Summary List written-off sales
// @Tags sales
// @Produce json
// @Success 200 {array} dto.ClosedSaleResponse
// @Security BearerAuth
// @Router /closed-sales [get]
func (h *saleHandler) listClosedSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	records, err := h.saleService.ListClosedSales(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list closed sales")
		return
	}
	c.JSON(http.StatusOK, dto.ToClosedSaleResponses(records))
}

// listClosureReasons godoc
// @Summary List accepted closure reasons
// @Tags sales
// @Produce json
// @Success 200 {array} dto.ClosureReasonResponse
// @Security BearerAuth
// @Router /closure-reasons [get]
func (h *saleHandler) listClosureReasons(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToClosureReasonResponses())
}
