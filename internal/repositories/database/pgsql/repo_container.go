package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SaleRepo:   newPgxSaleRepository(dbPool),
		ParcelRepo: newPgxParcelRepository(dbPool),
		TxManager:  NewPgxTxManager(dbPool),
	}
}
