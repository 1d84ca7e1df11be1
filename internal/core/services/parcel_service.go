package services

import (
	"context"
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
)

// parcelService implements the ParcelSvcFacade interface
type parcelService struct {
	BaseService
	saleRepo   portsrepo.SaleRepositoryFacade
	parcelRepo portsrepo.ParcelRepositoryFacade
	txManager  portsrepo.TransactionManager
}

// NewParcelService creates a new parcel service with the provided options
func NewParcelService(saleRepo portsrepo.SaleRepositoryFacade, parcelRepo portsrepo.ParcelRepositoryFacade, txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.ParcelSvcFacade {
	return &parcelService{
		BaseService: newBaseService(options),
		saleRepo:    saleRepo,
		parcelRepo:  parcelRepo,
		txManager:   txManager,
	}
}

// Ensure parcelService implements the ParcelSvcFacade interface
var _ portssvc.ParcelSvcFacade = (*parcelService)(nil)

func (s *parcelService) ListParcels(ctx context.Context, customerFilter string) ([]domain.ParcelView, error) {
	portfolio, err := loadPortfolio(ctx, s.saleRepo, s.parcelRepo, false)
	if err != nil {
		return nil, err
	}
	return accounting.FilterByCustomer(s.Ledger().ParcelViews(portfolio), customerFilter), nil
}

func (s *parcelService) GetParcel(ctx context.Context, parcelID string) (*domain.ParcelView, error) {
	parcel, err := s.parcelRepo.FindParcelByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	sale, err := s.saleRepo.FindSaleByID(ctx, parcel.SaleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale of parcel %s: %w", parcelID, err)
	}
	adjustments, err := s.parcelRepo.ListAdjustmentsByParcel(ctx, parcelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments of parcel %s: %w", parcelID, err)
	}
	return &domain.ParcelView{
		Parcel:   *parcel,
		Customer: sale.Customer,
		Device:   sale.Device,
		Summary:  s.Ledger().Summarize(*parcel, adjustments),
	}, nil
}

func (s *parcelService) ListAdjustments(ctx context.Context, parcelID string) ([]domain.Adjustment, error) {
	if _, err := s.parcelRepo.FindParcelByID(ctx, parcelID); err != nil {
		return nil, err
	}
	return s.parcelRepo.ListAdjustmentsByParcel(ctx, parcelID)
}

// RecordAdjustment appends the event and evaluates the archival guard in the same transaction.
func (s *parcelService) RecordAdjustment(ctx context.Context, parcelID string, req dto.CreateAdjustmentRequest) (*domain.AdjustmentOutcome, error) {
	kind := domain.AdjustmentKind(req.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown adjustment kind %q", apperrors.ErrValidation, req.Kind)
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if !domain.IsWholeCents(req.Amount) {
		return nil, fmt.Errorf("%w: amount cannot have fractions of a cent", apperrors.ErrValidation)
	}

	ledger := s.Ledger()
	var outcome domain.AdjustmentOutcome

	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		parcel, err := repos.Parcels.FindParcelByID(ctx, parcelID)
		if err != nil {
			return err
		}
		sale, err := repos.Sales.FindSaleByID(ctx, parcel.SaleID)
		if err != nil {
			return fmt.Errorf("failed to find sale of parcel %s: %w", parcelID, err)
		}
		history, err := repos.Parcels.ListAdjustmentsByParcel(ctx, parcelID)
		if err != nil {
			return fmt.Errorf("failed to list adjustments of parcel %s: %w", parcelID, err)
		}
		if !ledger.Summarize(*parcel, history).IsOpen() {
			return fmt.Errorf("%w: parcel %s has no open balance", apperrors.ErrValidation, parcelID)
		}

		adjustment := domain.Adjustment{
			AdjustmentID: uuid.NewString(),
			ParcelID:     parcelID,
			Kind:         kind,
			Amount:       req.Amount,
			Description:  strings.TrimSpace(req.Description),
			CreatedAt:    s.Now(),
		}
		if err := repos.Parcels.SaveAdjustment(ctx, adjustment); err != nil {
			return fmt.Errorf("failed to save adjustment: %w", err)
		}

		outcome = domain.AdjustmentOutcome{
			Adjustment: adjustment,
			Parcel: domain.ParcelView{
				Parcel:   *parcel,
				Customer: sale.Customer,
				Device:   sale.Device,
				Summary:  ledger.Summarize(*parcel, append(history, adjustment)),
			},
		}

		paid, err := isFullyPaid(ctx, ledger, repos.Parcels, parcel.SaleID)
		if err != nil {
			return err
		}
		if paid {
			if err := repos.Sales.ArchiveSale(ctx, parcel.SaleID, s.Now()); err != nil {
				return fmt.Errorf("failed to archive sale %s: %w", parcel.SaleID, err)
			}
			outcome.SaleArchived = true
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record adjustment", slog.String("parcel_id", parcelID))
		return nil, err
	}

	s.LogInfo(ctx, "Adjustment recorded",
		slog.String("parcel_id", parcelID),
		slog.String("kind", string(kind)),
		slog.String("amount", req.Amount.String()),
		slog.Bool("sale_archived", outcome.SaleArchived))
	return &outcome, nil
}
