package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bestcell/bestsystem_backend/internal/core/ports/services"
	"github.com/bestcell/bestsystem_backend/internal/dto"
	"github.com/bestcell/bestsystem_backend/internal/middleware"
)

// parcelHandler handles HTTP requests related to parcels and their adjustments.
type parcelHandler struct {
	parcelService portssvc.ParcelSvcFacade
}

func newParcelHandler(ps portssvc.ParcelSvcFacade) *parcelHandler {
	return &parcelHandler{parcelService: ps}
}

// registerParcelRoutes registers routes related to parcels.
func registerParcelRoutes(rg *gin.RouterGroup, parcelService portssvc.ParcelSvcFacade) {
	h := newParcelHandler(parcelService)

	parcels := rg.Group("/parcels")
	{
		parcels.GET("", h.listParcels)
		parcels.GET("/:parcelID", h.getParcel)
		parcels.GET("/:parcelID/adjustments", h.listAdjustments)
		parcels.POST("/:parcelID/adjustments", h.recordAdjustment)
	}
}

// listParcels godoc
// @Summary List live parcels
// @Tags parcels
// @Produce json
// @Param customer query string false "Case-insensitive customer name filter"
// @Success 200 {array} dto.ParcelResponse
// @Security BearerAuth
// @Router /parcels [get]
func (h *parcelHandler) listParcels(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	views, err := h.parcelService.ListParcels(c.Request.Context(), c.Query("customer"))
	if err != nil {
		respondError(c, logger, err, "Failed to list parcels")
		return
	}
	c.JSON(http.StatusOK, dto.ToParcelResponses(views))
}

// getParcel godoc
// @Summary Get a live parcel with its balance
// @Tags parcels
// @Produce json
// @Param parcelID path string true "Parcel ID"
// @Success 200 {object} dto.ParcelResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /parcels/{parcelID} [get]
func (h *parcelHandler) getParcel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	view, err := h.parcelService.GetParcel(c.Request.Context(), c.Param("parcelID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve parcel")
		return
	}
	c.JSON(http.StatusOK, dto.ToParcelResponse(*view))
}

// listAdjustments godoc
// @Summary List the adjustment history of a parcel
// @Tags parcels
// @Produce json
// @Param parcelID path string true "Parcel ID"
// @Success 200 {array} domain.Adjustment
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /parcels/{parcelID}/adjustments [get]
func (h *parcelHandler) listAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustments, err := h.parcelService.ListAdjustments(c.Request.Context(), c.Param("parcelID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list adjustments")
		return
	}
	c.JSON(http.StatusOK, adjustments)
}

// recordAdjustment godoc
// @Summary Record a payment, surcharge or discount
// @Description Archives the sale when the adjustment settles its last open parcel.
// @Tags parcels
// @Accept json
// @Produce json
// @Param parcelID path string true "Parcel ID"
// @Param adjustment body dto.CreateAdjustmentRequest true "Adjustment"
// @Success 201 {object} dto.AdjustmentOutcomeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /parcels/{parcelID}/adjustments [post]
func (h *parcelHandler) recordAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	outcome, err := h.parcelService.RecordAdjustment(c.Request.Context(), c.Param("parcelID"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to record adjustment")
		return
	}
	c.JSON(http.StatusCreated, dto.AdjustmentOutcomeResponse{
		Adjustment:   outcome.Adjustment,
		Parcel:       dto.ToParcelResponse(outcome.Parcel),
		SaleArchived: outcome.SaleArchived,
	})
}
