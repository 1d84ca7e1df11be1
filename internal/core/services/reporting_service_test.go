package services_test

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/dto"
)

// seedPortfolio registers one overdue installment sale in January, one paid-off sale in February
// and a cash sale in March. Today is 2024-03-08.
func (suite *ServiceTestSuite) seedPortfolio() *domain.SaleDetail {
	overdue := suite.installment("Ana", "100", 2, "50", "2024-01-10")

	paidOff := suite.installment("Bia", "80", 1, "20", "2024-02-05")
	suite.pay(paidOff.Parcels[1].Parcel.ParcelID, "20")

	_, err := suite.sales.CreateSale(suite.ctx, dto.CreateSaleRequest{
		Customer: "Caio", Device: "Moto G", SaleType: "cash", DownPayment: dec("300"), SaleDate: "2024-03-02",
	})
	suite.Require().NoError(err)
	return overdue
}

func (suite *ServiceTestSuite) TestMonthlySummary() {
	suite.seedPortfolio()

	rows, err := suite.reporting.MonthlySummary(suite.ctx,
		civil.Date{Year: 2024, Month: time.January, Day: 1},
		civil.Date{Year: 2024, Month: time.March, Day: 31})
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)

	suite.Equal("2024-01", rows[0].Month)
	suite.True(dec("200").Equal(rows[0].SoldValue))
	suite.True(dec("100").Equal(rows[0].Received))
	suite.True(dec("100").Equal(rows[0].Outstanding))
	suite.True(dec("50").Equal(rows[0].Overdue), "only the February installment is past due")

	suite.Equal("2024-02", rows[1].Month)
	suite.True(dec("80").Equal(rows[1].Received), "down payment is dated on the sale day")
	suite.True(rows[1].Outstanding.IsZero())

	suite.Equal("2024-03", rows[2].Month)
	suite.True(dec("300").Equal(rows[2].SoldValue))
	suite.True(dec("320").Equal(rows[2].Received), "cash sale plus the payment made today")

	_, err = suite.reporting.MonthlySummary(suite.ctx,
		civil.Date{Year: 2024, Month: time.March, Day: 1},
		civil.Date{Year: 2024, Month: time.January, Day: 1})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ServiceTestSuite) TestDrillDowns() {
	overdue := suite.seedPortfolio()

	open, err := suite.reporting.OpenParcels(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(open, 2)

	late, err := suite.reporting.OverdueParcels(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(late, 1)
	suite.Equal(overdue.Parcels[1].Parcel.ParcelID, late[0].Parcel.ParcelID)
	suite.Equal(27, late[0].Summary.OverdueDays)

	due, err := suite.reporting.ParcelsDueInMonth(suite.ctx, 2024, time.March)
	suite.Require().NoError(err)
	suite.Require().Len(due, 1)
	suite.Equal(overdue.Parcels[2].Parcel.ParcelID, due[0].Parcel.ParcelID)

	_, err = suite.reporting.ParcelsDueInMonth(suite.ctx, 2024, time.Month(13))
	suite.ErrorIs(err, apperrors.ErrValidation)

	sales, err := suite.reporting.SalesOfMonth(suite.ctx, 2024, time.February)
	suite.Require().NoError(err)
	suite.Require().Len(sales, 1)
	suite.Equal("Bia", sales[0].Customer)

	critical, err := suite.reporting.CriticalCustomers(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(critical, 1)
	suite.Equal("Ana", critical[0].Customer)
	suite.Equal(27, critical[0].MaxOverdueDays)
	suite.True(dec("105.3").Equal(critical[0].InformationalFines))
}

func (suite *ServiceTestSuite) TestHealthSummary() {
	suite.seedPortfolio()

	health, err := suite.reporting.HealthSummary(suite.ctx)
	suite.Require().NoError(err)
	suite.True(dec("600").Equal(health.TotalSold))
	suite.True(dec("500").Equal(health.TotalReceived))
	suite.True(dec("100").Equal(health.Outstanding))
	suite.True(dec("50").Equal(health.Overdue))
	suite.True(dec("50").Equal(health.FutureReceivable))
	suite.True(dec("3.9").Equal(health.DailyFine))
}

func (suite *ServiceTestSuite) TestExportMonthlySummary() {
	suite.seedPortfolio()

	data, err := suite.reporting.ExportMonthlySummary(suite.ctx,
		civil.Date{Year: 2024, Month: time.January, Day: 1},
		civil.Date{Year: 2024, Month: time.March, Day: 31})
	suite.Require().NoError(err)
	suite.Equal("PK", string(data[:2]), "xlsx is a zip container")
}
