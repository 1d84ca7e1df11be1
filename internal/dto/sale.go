package dto

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/utils"
)

// CreateSaleRequest defines the data needed to register a sale.
// SaleDate accepts YYYY-MM-DD or a full ISO-8601 timestamp; empty means today.
type CreateSaleRequest struct {
	Customer         string          `json:"customer" binding:"required,max=200"`
	Device           string          `json:"device" binding:"required,max=200"`
	SaleType         string          `json:"saleType" binding:"required,oneof=cash installment"`
	DownPayment      decimal.Decimal `json:"downPayment" binding:"money"`
	InstallmentCount int             `json:"installmentCount" binding:"min=0,max=120"`
	InstallmentValue decimal.Decimal `json:"installmentValue" binding:"money"`
	SaleDate         string          `json:"saleDate"`
}

// CloseSaleRequest defines the data needed to write off a sale.
type CloseSaleRequest struct {
	Reason string `json:"reason" binding:"required,closure_reason"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID       string           `json:"saleID"`
	Customer     string           `json:"customer"`
	Device       string           `json:"device"`
	SaleType     domain.SaleType  `json:"saleType"`
	DownPayment  decimal.Decimal  `json:"downPayment"`
	TotalValue   decimal.Decimal  `json:"totalValue"`
	TotalDisplay string           `json:"totalDisplay"`
	SaleDate     civil.Date       `json:"saleDate"`
	CreatedAt    time.Time        `json:"createdAt"`
	State        domain.SaleState `json:"state"`
	ArchivedAt   *time.Time       `json:"archivedAt,omitempty"`
}

// SaleDetailResponse is a sale with its parcels.
type SaleDetailResponse struct {
	Sale    SaleResponse     `json:"sale"`
	Parcels []ParcelResponse `json:"parcels"`
}

// ClosedSaleResponse defines the data returned for a written-off sale.
type ClosedSaleResponse struct {
	domain.ClosedSaleRecord
	LostDisplay string `json:"lostDisplay"`
}

// ClosureReasonResponse is one accepted closure reason.
type ClosureReasonResponse struct {
	Key   domain.ClosureReason `json:"key"`
	Label string               `json:"label"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO.
func ToSaleResponse(s domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:       s.SaleID,
		Customer:     s.Customer,
		Device:       s.Device,
		SaleType:     s.SaleType,
		DownPayment:  s.DownPayment,
		TotalValue:   s.TotalValue,
		TotalDisplay: utils.FormatBRL(s.TotalValue),
		SaleDate:     s.SaleDate,
		CreatedAt:    s.CreatedAt,
		State:        s.State,
		ArchivedAt:   s.ArchivedAt,
	}
}

// ToSaleResponses converts a slice of sales.
func ToSaleResponses(sales []domain.Sale) []SaleResponse {
	out := make([]SaleResponse, len(sales))
	for i, s := range sales {
		out[i] = ToSaleResponse(s)
	}
	return out
}

// ToSaleDetailResponse converts a domain.SaleDetail.
func ToSaleDetailResponse(d domain.SaleDetail) SaleDetailResponse {
	return SaleDetailResponse{
		Sale:    ToSaleResponse(d.Sale),
		Parcels: ToParcelResponses(d.Parcels),
	}
}

// ToClosedSaleResponses converts write-off records.
func ToClosedSaleResponses(records []domain.ClosedSaleRecord) []ClosedSaleResponse {
	out := make([]ClosedSaleResponse, len(records))
	for i, r := range records {
		out[i] = ClosedSaleResponse{ClosedSaleRecord: r, LostDisplay: utils.FormatBRL(r.LostValue)}
	}
	return out
}

// ToClosureReasonResponses lists the accepted closure reasons.
func ToClosureReasonResponses() []ClosureReasonResponse {
	reasons := domain.ClosureReasons()
	out := make([]ClosureReasonResponse, len(reasons))
	for i, r := range reasons {
		out[i] = ClosureReasonResponse{Key: r, Label: r.Label()}
	}
	return out
}
