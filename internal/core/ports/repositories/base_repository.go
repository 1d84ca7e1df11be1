package repositories

import "context"

// TxRepositories are repositories bound to a single store transaction.
type TxRepositories struct {
	Sales   SaleRepositoryFacade
	Parcels ParcelRepositoryFacade
}

// TransactionManager runs a unit of work atomically. If fn returns an error nothing it wrote is kept.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
