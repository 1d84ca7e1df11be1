package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
	portssvc "github.com/bestcell/bestsystem_backend/internal/core/ports/services"
	"github.com/bestcell/bestsystem_backend/internal/dto"
	"github.com/bestcell/bestsystem_backend/internal/utils/accounting"
	"github.com/bestcell/bestsystem_backend/internal/utils/dates"
)

// DownPaymentDescription is recorded on the implicit payment of parcel 0.
const DownPaymentDescription = "Entrada / Pagamento à vista"

// saleService implements the SaleSvcFacade interface
type saleService struct {
	BaseService
	saleRepo   portsrepo.SaleRepositoryFacade
	parcelRepo portsrepo.ParcelRepositoryFacade
	txManager  portsrepo.TransactionManager
}

// NewSaleService creates a new sale service with the provided options
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, parcelRepo portsrepo.ParcelRepositoryFacade, txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.SaleSvcFacade {
	return &saleService{
		BaseService: newBaseService(options),
		saleRepo:    saleRepo,
		parcelRepo:  parcelRepo,
		txManager:   txManager,
	}
}

// Ensure saleService implements the SaleSvcFacade interface
var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// CreateSale validates the request, builds the parcel schedule and persists everything atomically.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*domain.SaleDetail, error) {
	sale, parcels, err := s.buildSale(req)
	if err != nil {
		return nil, err
	}

	var adjustments []domain.Adjustment
	if sale.DownPayment.GreaterThan(decimal.Zero) {
		adjustments = append(adjustments, domain.Adjustment{
			AdjustmentID: uuid.NewString(),
			ParcelID:     parcels[0].ParcelID,
			Kind:         domain.AdjustmentPayment,
			Amount:       sale.DownPayment,
			Description:  DownPaymentDescription,
			CreatedAt:    dates.StartOfDay(sale.SaleDate),
		})
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := repos.Sales.SaveSale(ctx, sale, parcels); err != nil {
			return fmt.Errorf("failed to save sale: %w", err)
		}
		for _, a := range adjustments {
			if err := repos.Parcels.SaveAdjustment(ctx, a); err != nil {
				return fmt.Errorf("failed to save down payment: %w", err)
			}
		}
		if sale.SaleType == domain.SaleTypeCash {
			archivedAt := s.Now()
			if err := repos.Sales.ArchiveSale(ctx, sale.SaleID, archivedAt); err != nil {
				return fmt.Errorf("failed to archive cash sale: %w", err)
			}
			sale.State = domain.SaleArchived
			sale.ArchivedAt = &archivedAt
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create sale", slog.String("sale_id", sale.SaleID))
		return nil, err
	}

	s.LogInfo(ctx, "Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("sale_type", string(sale.SaleType)),
		slog.String("total_value", sale.TotalValue.String()),
		slog.Int("parcels", len(parcels)))

	return &domain.SaleDetail{
		Sale:    sale,
		Parcels: parcelViews(s.Ledger(), sale, parcels, adjustments),
	}, nil
}

// buildSale applies the sale invariants: a cash sale totals its down payment; an installment sale
// totals the down payment plus every installment. Parcel k is due k months after the sale date.
func (s *saleService) buildSale(req dto.CreateSaleRequest) (domain.Sale, []domain.Parcel, error) {
	customer := strings.TrimSpace(req.Customer)
	device := strings.TrimSpace(req.Device)
	if customer == "" || device == "" {
		return domain.Sale{}, nil, fmt.Errorf("%w: customer and device are required", apperrors.ErrValidation)
	}

	saleType := domain.SaleType(req.SaleType)
	if !saleType.IsValid() {
		return domain.Sale{}, nil, fmt.Errorf("%w: unknown sale type %q", apperrors.ErrValidation, req.SaleType)
	}

	saleDate := s.Today()
	if strings.TrimSpace(req.SaleDate) != "" {
		d, err := dates.NormalizeDate(req.SaleDate)
		if err != nil {
			return domain.Sale{}, nil, err
		}
		saleDate = d
	}

	downPayment := req.DownPayment
	if !domain.IsWholeCents(downPayment) || !domain.IsWholeCents(req.InstallmentValue) {
		return domain.Sale{}, nil, fmt.Errorf("%w: amounts cannot have fractions of a cent", apperrors.ErrValidation)
	}
	var total decimal.Decimal
	installments := 0

	switch saleType {
	case domain.SaleTypeCash:
		if !downPayment.GreaterThan(decimal.Zero) {
			return domain.Sale{}, nil, fmt.Errorf("%w: cash sale value must be greater than zero", apperrors.ErrValidation)
		}
		total = downPayment
	case domain.SaleTypeInstallment:
		if downPayment.IsNegative() {
			return domain.Sale{}, nil, fmt.Errorf("%w: down payment cannot be negative", apperrors.ErrValidation)
		}
		if req.InstallmentCount < 1 {
			return domain.Sale{}, nil, fmt.Errorf("%w: installment sale needs at least one installment", apperrors.ErrValidation)
		}
		if !req.InstallmentValue.GreaterThan(decimal.Zero) {
			return domain.Sale{}, nil, fmt.Errorf("%w: installment value must be greater than zero", apperrors.ErrValidation)
		}
		installments = req.InstallmentCount
		total = downPayment.Add(req.InstallmentValue.Mul(decimal.NewFromInt(int64(installments))))
	}

	now := s.Now()
	sale := domain.Sale{
		SaleID:      uuid.NewString(),
		Customer:    customer,
		Device:      device,
		SaleType:    saleType,
		DownPayment: downPayment,
		TotalValue:  total,
		SaleDate:    saleDate,
		CreatedAt:   now,
		State:       domain.SaleActive,
	}

	parcels := make([]domain.Parcel, 0, installments+1)
	parcels = append(parcels, domain.Parcel{
		ParcelID:      uuid.NewString(),
		SaleID:        sale.SaleID,
		Number:        0,
		OriginalValue: downPayment,
		DueDate:       saleDate,
		CreatedAt:     now,
	})
	for k := 1; k <= installments; k++ {
		parcels = append(parcels, domain.Parcel{
			ParcelID:      uuid.NewString(),
			SaleID:        sale.SaleID,
			Number:        k,
			OriginalValue: req.InstallmentValue,
			DueDate:       dates.AddMonths(saleDate, k),
			CreatedAt:     now,
		})
	}
	return sale, parcels, nil
}

// GetSale looks in the active store first, then in the archive.
func (s *saleService) GetSale(ctx context.Context, saleID string) (*domain.SaleDetail, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err == nil {
		parcels, err := s.parcelRepo.ListParcelsBySale(ctx, saleID)
		if err != nil {
			return nil, fmt.Errorf("failed to list parcels of sale %s: %w", saleID, err)
		}
		adjustments, err := s.parcelRepo.ListAdjustmentsBySale(ctx, saleID)
		if err != nil {
			return nil, fmt.Errorf("failed to list adjustments of sale %s: %w", saleID, err)
		}
		return &domain.SaleDetail{Sale: *sale, Parcels: parcelViews(s.Ledger(), *sale, parcels, adjustments)}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	sale, err = s.saleRepo.FindArchivedSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	parcels, err := s.parcelRepo.ListArchivedParcelsBySale(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived parcels of sale %s: %w", saleID, err)
	}
	adjustments, err := s.parcelRepo.ListArchivedAdjustmentsBySale(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived adjustments of sale %s: %w", saleID, err)
	}
	return &domain.SaleDetail{Sale: *sale, Parcels: parcelViews(s.Ledger(), *sale, parcels, adjustments)}, nil
}

func (s *saleService) ListSales(ctx context.Context, state domain.SaleState) ([]domain.Sale, error) {
	switch state {
	case domain.SaleActive, "":
		return s.saleRepo.ListActiveSales(ctx)
	case domain.SaleArchived:
		return s.saleRepo.ListArchivedSales(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown sale state %q", apperrors.ErrValidation, state)
	}
}

func (s *saleService) ListClosedSales(ctx context.Context) ([]domain.ClosedSaleRecord, error) {
	return s.saleRepo.ListClosedSales(ctx)
}

// IsSaleFullyPaid is true for archived sales and for active sales whose parcels all have balance <= 0.
func (s *saleService) IsSaleFullyPaid(ctx context.Context, saleID string) (bool, error) {
	if _, err := s.saleRepo.FindSaleByID(ctx, saleID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return false, err
		}
		if _, err := s.saleRepo.FindArchivedSaleByID(ctx, saleID); err != nil {
			return false, err
		}
		return true, nil
	}
	return isFullyPaid(ctx, s.Ledger(), s.parcelRepo, saleID)
}

// isFullyPaid evaluates the archival guard against repos, which may be bound to a transaction.
func isFullyPaid(ctx context.Context, ledger accounting.Ledger, repos portsrepo.ParcelRepositoryFacade, saleID string) (bool, error) {
	parcels, err := repos.ListParcelsBySale(ctx, saleID)
	if err != nil {
		return false, fmt.Errorf("failed to list parcels of sale %s: %w", saleID, err)
	}
	adjustments, err := repos.ListAdjustmentsBySale(ctx, saleID)
	if err != nil {
		return false, fmt.Errorf("failed to list adjustments of sale %s: %w", saleID, err)
	}
	return ledger.IsFullyPaid(parcels, accounting.GroupByParcel(adjustments)), nil
}

// ArchiveSale re-checks the guard inside the transaction that archives.
func (s *saleService) ArchiveSale(ctx context.Context, saleID string) error {
	ledger := s.Ledger()
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if _, err := repos.Sales.FindSaleByID(ctx, saleID); err != nil {
			return err
		}
		paid, err := isFullyPaid(ctx, ledger, repos.Parcels, saleID)
		if err != nil {
			return err
		}
		if !paid {
			return fmt.Errorf("%w: sale %s still has an open balance", apperrors.ErrValidation, saleID)
		}
		return repos.Sales.ArchiveSale(ctx, saleID, s.Now())
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "Sale archived", slog.String("sale_id", saleID))
	return nil
}

// PreviewClosure reports received payments, the open balance and the loss a write-off would record.
func (s *saleService) PreviewClosure(ctx context.Context, saleID string) (*domain.ClosurePreview, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	parcels, err := s.parcelRepo.ListParcelsBySale(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list parcels of sale %s: %w", saleID, err)
	}
	adjustments, err := s.parcelRepo.ListAdjustmentsBySale(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments of sale %s: %w", saleID, err)
	}

	open := decimal.Zero
	for _, v := range parcelViews(s.Ledger(), *sale, parcels, adjustments) {
		if v.Summary.IsOpen() {
			open = open.Add(v.Summary.Balance)
		}
	}
	received := domain.RoundMoney(accounting.TotalPayments(adjustments))

	return &domain.ClosurePreview{
		SaleID:        sale.SaleID,
		Customer:      sale.Customer,
		TotalValue:    sale.TotalValue,
		ReceivedValue: received,
		OpenBalance:   domain.RoundMoney(open),
		LostValue:     domain.RoundMoney(sale.TotalValue.Sub(received)),
	}, nil
}

// CloseSaleCritical snapshots the sale and purges its live rows in one transaction.
func (s *saleService) CloseSaleCritical(ctx context.Context, saleID string, reason domain.ClosureReason) (*domain.ClosedSaleRecord, error) {
	if !reason.IsValid() {
		return nil, fmt.Errorf("%w: unknown closure reason %q", apperrors.ErrValidation, reason)
	}

	var record domain.ClosedSaleRecord
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		sale, err := repos.Sales.FindSaleByID(ctx, saleID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: sale %s does not exist or is already closed", apperrors.ErrNotFound, saleID)
			}
			return err
		}
		adjustments, err := repos.Parcels.ListAdjustmentsBySale(ctx, saleID)
		if err != nil {
			return fmt.Errorf("failed to list adjustments of sale %s: %w", saleID, err)
		}

		received := domain.RoundMoney(accounting.TotalPayments(adjustments))
		record = domain.ClosedSaleRecord{
			SaleID:        sale.SaleID,
			Customer:      sale.Customer,
			Device:        sale.Device,
			TotalValue:    sale.TotalValue,
			ReceivedValue: received,
			LostValue:     domain.RoundMoney(sale.TotalValue.Sub(received)),
			SaleDate:      sale.SaleDate,
			CreatedAt:     sale.CreatedAt,
			ClosedAt:      s.Now(),
			Reason:        reason.Label(),
		}
		if err := repos.Sales.SaveClosedSale(ctx, record); err != nil {
			return fmt.Errorf("failed to save closed sale %s: %w", saleID, err)
		}
		return repos.Sales.DeleteSale(ctx, saleID)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Sale closed",
		slog.String("sale_id", saleID),
		slog.String("reason", string(reason)),
		slog.String("lost_value", record.LostValue.String()))
	return &record, nil
}

// DeleteSale is the destructive correction path; no snapshot is kept.
func (s *saleService) DeleteSale(ctx context.Context, saleID string, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("%w: deleting sale %s cannot be undone", apperrors.ErrConfirmationRequired, saleID)
	}
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		return repos.Sales.DeleteSale(ctx, saleID)
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "Sale deleted", slog.String("sale_id", saleID))
	return nil
}
