package handlers_test

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/mock"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	portssvc "github.com/bestcell/bestsystem_backend/internal/core/ports/services"
	"github.com/bestcell/bestsystem_backend/internal/dto"
)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) GetSale(ctx context.Context, saleID string) (*domain.SaleDetail, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleDetail), args.Error(1)
}

func (m *MockSaleService) ListSales(ctx context.Context, state domain.SaleState) ([]domain.Sale, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleService) ListClosedSales(ctx context.Context) ([]domain.ClosedSaleRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosedSaleRecord), args.Error(1)
}

func (m *MockSaleService) IsSaleFullyPaid(ctx context.Context, saleID string) (bool, error) {
	args := m.Called(ctx, saleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSaleService) PreviewClosure(ctx context.Context, saleID string) (*domain.ClosurePreview, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosurePreview), args.Error(1)
}

func (m *MockSaleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*domain.SaleDetail, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleDetail), args.Error(1)
}

func (m *MockSaleService) ArchiveSale(ctx context.Context, saleID string) error {
	return m.Called(ctx, saleID).Error(0)
}

func (m *MockSaleService) CloseSaleCritical(ctx context.Context, saleID string, reason domain.ClosureReason) (*domain.ClosedSaleRecord, error) {
	args := m.Called(ctx, saleID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosedSaleRecord), args.Error(1)
}

func (m *MockSaleService) DeleteSale(ctx context.Context, saleID string, confirmed bool) error {
	return m.Called(ctx, saleID, confirmed).Error(0)
}

var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Mock ParcelService ---
type MockParcelService struct {
	mock.Mock
}

func (m *MockParcelService) ListParcels(ctx context.Context, customerFilter string) ([]domain.ParcelView, error) {
	args := m.Called(ctx, customerFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParcelView), args.Error(1)
}

func (m *MockParcelService) GetParcel(ctx context.Context, parcelID string) (*domain.ParcelView, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParcelView), args.Error(1)
}

func (m *MockParcelService) ListAdjustments(ctx context.Context, parcelID string) ([]domain.Adjustment, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Adjustment), args.Error(1)
}

func (m *MockParcelService) RecordAdjustment(ctx context.Context, parcelID string, req dto.CreateAdjustmentRequest) (*domain.AdjustmentOutcome, error) {
	args := m.Called(ctx, parcelID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdjustmentOutcome), args.Error(1)
}

var _ portssvc.ParcelSvcFacade = (*MockParcelService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) MonthlySummary(ctx context.Context, from, to civil.Date) ([]domain.MonthlySummaryRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlySummaryRow), args.Error(1)
}

func (m *MockReportingService) ExportMonthlySummary(ctx context.Context, from, to civil.Date) ([]byte, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportingService) SalesOfMonth(ctx context.Context, year int, month time.Month) ([]domain.Sale, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockReportingService) ParcelsDueInMonth(ctx context.Context, year int, month time.Month) ([]domain.ParcelView, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParcelView), args.Error(1)
}

func (m *MockReportingService) OpenParcels(ctx context.Context) ([]domain.ParcelView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParcelView), args.Error(1)
}

func (m *MockReportingService) OverdueParcels(ctx context.Context) ([]domain.ParcelView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParcelView), args.Error(1)
}

func (m *MockReportingService) CriticalCustomers(ctx context.Context) ([]domain.CriticalCustomer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CriticalCustomer), args.Error(1)
}

func (m *MockReportingService) HealthSummary(ctx context.Context) (*domain.HealthSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthSummary), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Mock SessionService ---
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Login(ctx context.Context, username, password string) (*domain.SessionToken, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionToken), args.Error(1)
}

func (m *MockSessionService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Logout(ctx context.Context, sessionID string, force bool) error {
	return m.Called(ctx, sessionID, force).Error(0)
}

var _ portssvc.SessionSvcFacade = (*MockSessionService)(nil)
