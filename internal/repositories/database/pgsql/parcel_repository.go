package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
	"github.com/bestcell/bestsystem_backend/internal/models"
	"github.com/bestcell/bestsystem_backend/internal/utils/mapping"
)

// foreignKeyViolation is the SQLSTATE raised when a referenced row is missing.
const foreignKeyViolation = "23503"

type PgxParcelRepository struct {
	BaseRepository
}

// newPgxParcelRepository creates a new repository for parcels and their adjustments.
func newPgxParcelRepository(db queryer) portsrepo.ParcelRepositoryFacade {
	return &PgxParcelRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ParcelRepositoryFacade = (*PgxParcelRepository)(nil)

func (r *PgxParcelRepository) FindParcelByID(ctx context.Context, parcelID string) (*domain.Parcel, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+parcelColumns+` FROM parcels WHERE id = $1`, parcelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query parcel %s: %w", parcelID, err)
	}
	modelParcel, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Parcel])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: parcel %s", apperrors.ErrNotFound, parcelID)
		}
		return nil, fmt.Errorf("failed to scan parcel %s: %w", parcelID, err)
	}
	parcel, err := mapping.ToDomainParcel(modelParcel)
	if err != nil {
		return nil, err
	}
	return &parcel, nil
}

func (r *PgxParcelRepository) ListParcels(ctx context.Context) ([]domain.Parcel, error) {
	return r.listParcels(ctx, `SELECT `+parcelColumns+` FROM parcels ORDER BY vencimento, parcela_num, id`)
}

func (r *PgxParcelRepository) ListParcelsBySale(ctx context.Context, saleID string) ([]domain.Parcel, error) {
	return r.listParcels(ctx, `SELECT `+parcelColumns+` FROM parcels WHERE sale_id = $1 ORDER BY parcela_num`, saleID)
}

func (r *PgxParcelRepository) ListArchivedParcelsBySale(ctx context.Context, saleID string) ([]domain.Parcel, error) {
	return r.listParcels(ctx, `SELECT `+parcelColumns+` FROM parcels_archive WHERE sale_id = $1 ORDER BY parcela_num`, saleID)
}

func (r *PgxParcelRepository) listParcels(ctx context.Context, query string, args ...any) ([]domain.Parcel, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parcels: %w", err)
	}
	modelParcels, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Parcel])
	if err != nil {
		return nil, fmt.Errorf("failed to scan parcels: %w", err)
	}

	parcels := make([]domain.Parcel, 0, len(modelParcels))
	for _, m := range modelParcels {
		p, err := mapping.ToDomainParcel(m)
		if err != nil {
			return nil, fmt.Errorf("parcel %s: %w", m.ID, err)
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}

func (r *PgxParcelRepository) ListAdjustmentsByParcel(ctx context.Context, parcelID string) ([]domain.Adjustment, error) {
	return r.listAdjustments(ctx, `SELECT `+adjustmentColumns+` FROM parcel_adjustments WHERE parcel_id = $1`, parcelID)
}

func (r *PgxParcelRepository) ListAdjustmentsBySale(ctx context.Context, saleID string) ([]domain.Adjustment, error) {
	return r.listAdjustments(ctx, `
		SELECT a.id, a.parcel_id, a.tipo, a.valor, a.descricao, a.created_at
		FROM parcel_adjustments a
		JOIN parcels p ON p.id = a.parcel_id
		WHERE p.sale_id = $1`, saleID)
}

func (r *PgxParcelRepository) ListAdjustments(ctx context.Context) ([]domain.Adjustment, error) {
	return r.listAdjustments(ctx, `SELECT `+adjustmentColumns+` FROM parcel_adjustments`)
}

func (r *PgxParcelRepository) ListArchivedAdjustments(ctx context.Context) ([]domain.Adjustment, error) {
	return r.listAdjustments(ctx, `SELECT `+adjustmentColumns+` FROM parcel_adjustments_archive`)
}

func (r *PgxParcelRepository) ListArchivedAdjustmentsBySale(ctx context.Context, saleID string) ([]domain.Adjustment, error) {
	return r.listAdjustments(ctx, `
		SELECT a.id, a.parcel_id, a.tipo, a.valor, a.descricao, a.created_at
		FROM parcel_adjustments_archive a
		JOIN parcels_archive p ON p.id = a.parcel_id
		WHERE p.sale_id = $1`, saleID)
}

// listAdjustments returns events oldest first. Timestamps are text of varying precision, so the
// order is established after parsing.
func (r *PgxParcelRepository) listAdjustments(ctx context.Context, query string, args ...any) ([]domain.Adjustment, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments: %w", err)
	}
	modelAdjustments, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Adjustment])
	if err != nil {
		return nil, fmt.Errorf("failed to scan adjustments: %w", err)
	}

	adjustments := make([]domain.Adjustment, 0, len(modelAdjustments))
	for _, m := range modelAdjustments {
		a, err := mapping.ToDomainAdjustment(m)
		if err != nil {
			return nil, fmt.Errorf("adjustment %s: %w", m.ID, err)
		}
		adjustments = append(adjustments, a)
	}
	sort.SliceStable(adjustments, func(i, j int) bool {
		return adjustments[i].CreatedAt.Before(adjustments[j].CreatedAt)
	})
	return adjustments, nil
}

func (r *PgxParcelRepository) SaveAdjustment(ctx context.Context, adjustment domain.Adjustment) error {
	m := mapping.ToModelAdjustment(adjustment)
	query := `INSERT INTO parcel_adjustments (` + adjustmentColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.Exec(ctx, query, m.ID, m.ParcelID, m.Kind, m.Amount, m.Description, m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("%w: parcel %s", apperrors.ErrNotFound, m.ParcelID)
		}
		return fmt.Errorf("failed to save adjustment %s: %w", m.ID, err)
	}
	return nil
}
