package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
)

// PgxTxManager runs units of work in a database transaction.
type PgxTxManager struct {
	BaseRepository
}

// NewPgxTxManager creates a transaction manager over pool.
func NewPgxTxManager(pool *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{BaseRepository: BaseRepository{DB: pool}}
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

// WithinTx hands fn repositories bound to one transaction, committing only if fn succeeds.
func (m *PgxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer m.Rollback(ctx, tx)

	repos := portsrepo.TxRepositories{
		Sales:   newPgxSaleRepository(tx),
		Parcels: newPgxParcelRepository(tx),
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}
