package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
	"github.com/bestcell/bestsystem_backend/internal/models"
	"github.com/bestcell/bestsystem_backend/internal/utils/dates"
	"github.com/bestcell/bestsystem_backend/internal/utils/mapping"
)

const (
	saleColumns         = `id, cliente, aparelho, valor_entrada, tipo_venda, valor_total, data_venda, created_at`
	activeSaleSelect    = `SELECT ` + saleColumns + `, NULL::text AS archived_at FROM sales`
	archivedSaleSelect  = `SELECT ` + saleColumns + `, archived_at FROM sales_archive`
	closedSaleSelect    = `SELECT id, cliente, aparelho, valor_total, valor_recebido, valor_perdido, data_venda, created_at, closed_at, motivo FROM sales_closed`
	parcelColumns       = `id, sale_id, parcela_num, valor_original, vencimento, created_at`
	adjustmentColumns   = `id, parcel_id, tipo, valor, descricao, created_at`
	insertParcelQuery   = `INSERT INTO parcels (` + parcelColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	deleteActiveSaleSQL = `DELETE FROM sales WHERE id = $1`
)

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for sale data.
func newPgxSaleRepository(db queryer) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

// SaveSale inserts the sale row and its parcel schedule.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale, parcels []domain.Parcel) error {
	modelSale := mapping.ToModelSale(sale)

	return r.atomic(ctx, func(q queryer) error {
		query := `INSERT INTO sales (` + saleColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		_, err := q.Exec(ctx, query,
			modelSale.ID,
			modelSale.Customer,
			modelSale.Device,
			modelSale.DownPayment,
			modelSale.SaleType,
			modelSale.TotalValue,
			modelSale.SaleDate,
			modelSale.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale %s: %w", modelSale.ID, err)
		}

		batch := &pgx.Batch{}
		for _, p := range parcels {
			m := mapping.ToModelParcel(p)
			batch.Queue(insertParcelQuery, m.ID, m.SaleID, m.Number, m.OriginalValue, m.DueDate, m.CreatedAt)
		}
		results := q.SendBatch(ctx, batch)
		for range parcels {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert parcels of sale %s: %w", modelSale.ID, err)
			}
		}
		return results.Close()
	})
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return r.findSale(ctx, activeSaleSelect+` WHERE id = $1`, saleID)
}

func (r *PgxSaleRepository) FindArchivedSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return r.findSale(ctx, archivedSaleSelect+` WHERE id = $1`, saleID)
}

func (r *PgxSaleRepository) findSale(ctx context.Context, query, saleID string) (*domain.Sale, error) {
	rows, err := r.DB.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale %s: %w", saleID, err)
	}
	modelSale, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Sale])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}
		return nil, fmt.Errorf("failed to scan sale %s: %w", saleID, err)
	}
	sale, err := mapping.ToDomainSale(modelSale)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *PgxSaleRepository) ListActiveSales(ctx context.Context) ([]domain.Sale, error) {
	return r.listSales(ctx, activeSaleSelect+` ORDER BY data_venda DESC, created_at DESC`)
}

func (r *PgxSaleRepository) ListArchivedSales(ctx context.Context) ([]domain.Sale, error) {
	return r.listSales(ctx, archivedSaleSelect+` ORDER BY archived_at DESC, data_venda DESC`)
}

func (r *PgxSaleRepository) listSales(ctx context.Context, query string) ([]domain.Sale, error) {
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	modelSales, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Sale])
	if err != nil {
		return nil, fmt.Errorf("failed to scan sales: %w", err)
	}

	sales := make([]domain.Sale, 0, len(modelSales))
	for _, m := range modelSales {
		s, err := mapping.ToDomainSale(m)
		if err != nil {
			return nil, fmt.Errorf("sale %s: %w", m.ID, err)
		}
		sales = append(sales, s)
	}
	return sales, nil
}

func (r *PgxSaleRepository) ListClosedSales(ctx context.Context) ([]domain.ClosedSaleRecord, error) {
	rows, err := r.DB.Query(ctx, closedSaleSelect+` ORDER BY closed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query closed sales: %w", err)
	}
	modelRecords, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ClosedSale])
	if err != nil {
		return nil, fmt.Errorf("failed to scan closed sales: %w", err)
	}

	records := make([]domain.ClosedSaleRecord, 0, len(modelRecords))
	for _, m := range modelRecords {
		rec, err := mapping.ToDomainClosedSale(m)
		if err != nil {
			return nil, fmt.Errorf("closed sale %s: %w", m.ID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ArchiveSale copies the sale, its parcels and their adjustments to the archive tables, then drops
// the live rows. Parcels and adjustments go with the sale through ON DELETE CASCADE.
func (r *PgxSaleRepository) ArchiveSale(ctx context.Context, saleID string, archivedAt time.Time) error {
	stamp := dates.FormatTimestamp(archivedAt)

	return r.atomic(ctx, func(q queryer) error {
		tag, err := q.Exec(ctx, `
			INSERT INTO sales_archive (`+saleColumns+`, archived_at)
			SELECT `+saleColumns+`, $2 FROM sales WHERE id = $1`, saleID, stamp)
		if err != nil {
			return fmt.Errorf("failed to archive sale %s: %w", saleID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}

		if _, err := q.Exec(ctx, `
			INSERT INTO parcels_archive (`+parcelColumns+`)
			SELECT `+parcelColumns+` FROM parcels WHERE sale_id = $1`, saleID); err != nil {
			return fmt.Errorf("failed to archive parcels of sale %s: %w", saleID, err)
		}

		if _, err := q.Exec(ctx, `
			INSERT INTO parcel_adjustments_archive (`+adjustmentColumns+`)
			SELECT a.id, a.parcel_id, a.tipo, a.valor, a.descricao, a.created_at
			FROM parcel_adjustments a
			JOIN parcels p ON p.id = a.parcel_id
			WHERE p.sale_id = $1`, saleID); err != nil {
			return fmt.Errorf("failed to archive adjustments of sale %s: %w", saleID, err)
		}

		if _, err := q.Exec(ctx, deleteActiveSaleSQL, saleID); err != nil {
			return fmt.Errorf("failed to remove archived sale %s: %w", saleID, err)
		}
		return nil
	})
}

func (r *PgxSaleRepository) SaveClosedSale(ctx context.Context, record domain.ClosedSaleRecord) error {
	m := mapping.ToModelClosedSale(record)
	query := `
		INSERT INTO sales_closed (id, cliente, aparelho, valor_total, valor_recebido, valor_perdido, data_venda, created_at, closed_at, motivo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.Exec(ctx, query,
		m.ID,
		m.Customer,
		m.Device,
		m.TotalValue,
		m.ReceivedValue,
		m.LostValue,
		m.SaleDate,
		m.CreatedAt,
		m.ClosedAt,
		m.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to save closed sale %s: %w", m.ID, err)
	}
	return nil
}

// DeleteSale removes the live sale; its parcels and adjustments cascade.
func (r *PgxSaleRepository) DeleteSale(ctx context.Context, saleID string) error {
	tag, err := r.DB.Exec(ctx, deleteActiveSaleSQL, saleID)
	if err != nil {
		return fmt.Errorf("failed to delete sale %s: %w", saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
	}
	return nil
}
