package services_test

import (
	"time"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/dto"
)

func (suite *ServiceTestSuite) TestRecordAdjustment_PayingEverythingArchives() {
	detail := suite.installment("Bruna", "100", 2, "50", "2024-03-01")

	first := suite.pay(detail.Parcels[1].Parcel.ParcelID, "50")
	suite.False(first.SaleArchived)
	suite.True(first.Parcel.Summary.Balance.IsZero())
	suite.Equal(domain.ParcelPaid, first.Parcel.Summary.Status)
	suite.Equal(fixedNow, first.Adjustment.CreatedAt)

	second := suite.pay(detail.Parcels[2].Parcel.ParcelID, "50")
	suite.True(second.SaleArchived)

	active, err := suite.sales.ListSales(suite.ctx, domain.SaleActive)
	suite.Require().NoError(err)
	suite.Empty(active)

	archived, err := suite.sales.ListSales(suite.ctx, domain.SaleArchived)
	suite.Require().NoError(err)
	suite.Len(archived, 1)

	_, err = suite.parcels.GetParcel(suite.ctx, detail.Parcels[1].Parcel.ParcelID)
	suite.ErrorIs(err, apperrors.ErrNotFound, "archived parcels leave the live set")

	got, err := suite.sales.GetSale(suite.ctx, detail.Sale.SaleID)
	suite.Require().NoError(err)
	suite.Len(got.Parcels, 3, "archived sale keeps its parcel detail")
	for _, v := range got.Parcels {
		suite.Equal(domain.ParcelPaid, v.Summary.Status)
	}
}

func (suite *ServiceTestSuite) TestRecordAdjustment_SurchargeAndDiscount() {
	detail := suite.installment("Rafael", "0", 1, "50", "2024-03-01")
	parcelID := detail.Parcels[1].Parcel.ParcelID

	outcome, err := suite.parcels.RecordAdjustment(suite.ctx, parcelID, dto.CreateAdjustmentRequest{
		Kind: string(domain.AdjustmentSurcharge), Amount: dec("10"), Description: "  atraso ",
	})
	suite.Require().NoError(err)
	suite.True(dec("60").Equal(outcome.Parcel.Summary.Balance))
	suite.Equal("atraso", outcome.Adjustment.Description)

	outcome, err = suite.parcels.RecordAdjustment(suite.ctx, parcelID, dto.CreateAdjustmentRequest{
		Kind: string(domain.AdjustmentDiscount), Amount: dec("15"),
	})
	suite.Require().NoError(err)
	suite.True(dec("45").Equal(outcome.Parcel.Summary.Balance))
	suite.False(outcome.SaleArchived)

	view, err := suite.parcels.GetParcel(suite.ctx, parcelID)
	suite.Require().NoError(err)
	suite.Equal("Rafael", view.Customer)
	suite.True(dec("45").Equal(view.Summary.Balance))
	suite.True(dec("10").Equal(view.Summary.Surcharge))
	suite.True(dec("15").Equal(view.Summary.Discount))
}

func (suite *ServiceTestSuite) TestRecordAdjustment_Rejections() {
	detail := suite.installment("Paula", "100", 2, "50", "2024-03-01")

	cases := []struct {
		name     string
		parcelID string
		req      dto.CreateAdjustmentRequest
		want     error
	}{
		{"unknown kind", detail.Parcels[1].Parcel.ParcelID, dto.CreateAdjustmentRequest{Kind: "refund", Amount: dec("1")}, apperrors.ErrValidation},
		{"zero amount", detail.Parcels[1].Parcel.ParcelID, dto.CreateAdjustmentRequest{Kind: "payment", Amount: dec("0")}, apperrors.ErrValidation},
		{"negative amount", detail.Parcels[1].Parcel.ParcelID, dto.CreateAdjustmentRequest{Kind: "payment", Amount: dec("-5")}, apperrors.ErrValidation},
		{"fraction of a cent", detail.Parcels[1].Parcel.ParcelID, dto.CreateAdjustmentRequest{Kind: "payment", Amount: dec("0.001")}, apperrors.ErrValidation},
		{"settled parcel", detail.Parcels[0].Parcel.ParcelID, dto.CreateAdjustmentRequest{Kind: "payment", Amount: dec("5")}, apperrors.ErrValidation},
		{"unknown parcel", "missing", dto.CreateAdjustmentRequest{Kind: "payment", Amount: dec("5")}, apperrors.ErrNotFound},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			_, err := suite.parcels.RecordAdjustment(suite.ctx, tc.parcelID, tc.req)
			suite.ErrorIs(err, tc.want)
		})
	}

	history, err := suite.parcels.ListAdjustments(suite.ctx, detail.Parcels[1].Parcel.ParcelID)
	suite.Require().NoError(err)
	suite.Empty(history, "rejected adjustments are not stored")
}

func (suite *ServiceTestSuite) TestListParcels_CustomerFilter() {
	suite.installment("Maria Souza", "0", 1, "50", "2024-02-01")
	suite.installment("José Lima", "0", 1, "70", "2024-01-01")

	all, err := suite.parcels.ListParcels(suite.ctx, "")
	suite.Require().NoError(err)
	suite.Len(all, 4)
	suite.Equal(time.January, all[0].Parcel.DueDate.Month, "ordered by due date")

	maria, err := suite.parcels.ListParcels(suite.ctx, "  souza ")
	suite.Require().NoError(err)
	suite.Require().Len(maria, 2)
	for _, v := range maria {
		suite.Equal("Maria Souza", v.Customer)
	}
}
