// Package memory is a process-local implementation of the repository ports. It backs the test suites
// and the STORAGE_DRIVER=memory mode.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
)

type state struct {
	sales               map[string]domain.Sale
	archivedSales       map[string]domain.Sale
	closedSales         map[string]domain.ClosedSaleRecord
	parcels             map[string]domain.Parcel
	archivedParcels     map[string]domain.Parcel
	adjustments         []domain.Adjustment
	archivedAdjustments []domain.Adjustment
}

func newState() state {
	return state{
		sales:           make(map[string]domain.Sale),
		archivedSales:   make(map[string]domain.Sale),
		closedSales:     make(map[string]domain.ClosedSaleRecord),
		parcels:         make(map[string]domain.Parcel),
		archivedParcels: make(map[string]domain.Parcel),
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.archivedSales {
		c.archivedSales[k] = v
	}
	for k, v := range s.closedSales {
		c.closedSales[k] = v
	}
	for k, v := range s.parcels {
		c.parcels[k] = v
	}
	for k, v := range s.archivedParcels {
		c.archivedParcels[k] = v
	}
	c.adjustments = append([]domain.Adjustment(nil), s.adjustments...)
	c.archivedAdjustments = append([]domain.Adjustment(nil), s.archivedAdjustments...)
	return c
}

// Store keeps sales, parcels and adjustments in memory.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data state
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{data: newState()}
}

// NewRepositoryProvider wires a fresh Store behind every repository port.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	store := NewStore()
	return portsrepo.RepositoryProvider{
		SaleRepo:   store,
		ParcelRepo: store,
		TxManager:  store,
	}
}

var (
	_ portsrepo.SaleRepositoryFacade   = (*Store)(nil)
	_ portsrepo.ParcelRepositoryFacade = (*Store)(nil)
	_ portsrepo.TransactionManager     = (*Store)(nil)
)

// WithinTx serializes units of work and restores the previous state when fn fails. Readers outside
// the unit of work may observe its intermediate writes.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(ctx, portsrepo.TxRepositories{Sales: s, Parcels: s}); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// --- sales ---

func (s *Store) FindSaleByID(_ context.Context, saleID string) (*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sale, ok := s.data.sales[saleID]
	if !ok {
		return nil, fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
	}
	return &sale, nil
}

func (s *Store) FindArchivedSaleByID(_ context.Context, saleID string) (*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sale, ok := s.data.archivedSales[saleID]
	if !ok {
		return nil, fmt.Errorf("%w: archived sale %s", apperrors.ErrNotFound, saleID)
	}
	return &sale, nil
}

func (s *Store) ListActiveSales(_ context.Context) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sales := make([]domain.Sale, 0, len(s.data.sales))
	for _, sale := range s.data.sales {
		sales = append(sales, sale)
	}
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].SaleDate != sales[j].SaleDate {
			return sales[i].SaleDate.After(sales[j].SaleDate)
		}
		return sales[i].CreatedAt.After(sales[j].CreatedAt)
	})
	return sales, nil
}

func (s *Store) ListArchivedSales(_ context.Context) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sales := make([]domain.Sale, 0, len(s.data.archivedSales))
	for _, sale := range s.data.archivedSales {
		sales = append(sales, sale)
	}
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].ArchivedAt.After(*sales[j].ArchivedAt)
	})
	return sales, nil
}

func (s *Store) ListClosedSales(_ context.Context) ([]domain.ClosedSaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]domain.ClosedSaleRecord, 0, len(s.data.closedSales))
	for _, r := range s.data.closedSales {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ClosedAt.After(records[j].ClosedAt) })
	return records, nil
}

func (s *Store) SaveSale(_ context.Context, sale domain.Sale, parcels []domain.Parcel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data.sales[sale.SaleID]; exists {
		return apperrors.NewAppError(500, "duplicate sale id "+sale.SaleID, nil)
	}
	sale.State = domain.SaleActive
	s.data.sales[sale.SaleID] = sale
	for _, p := range parcels {
		s.data.parcels[p.ParcelID] = p
	}
	return nil
}

func (s *Store) ArchiveSale(_ context.Context, saleID string, archivedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, ok := s.data.sales[saleID]
	if !ok {
		return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
	}
	sale.State = domain.SaleArchived
	sale.ArchivedAt = &archivedAt
	s.data.archivedSales[saleID] = sale

	parcelIDs := s.data.parcelIDsOf(saleID)
	for id := range parcelIDs {
		s.data.archivedParcels[id] = s.data.parcels[id]
	}
	for _, a := range s.data.adjustments {
		if parcelIDs[a.ParcelID] {
			s.data.archivedAdjustments = append(s.data.archivedAdjustments, a)
		}
	}
	s.data.purge(saleID, parcelIDs)
	return nil
}

func (s *Store) SaveClosedSale(_ context.Context, record domain.ClosedSaleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.closedSales[record.SaleID] = record
	return nil
}

func (s *Store) DeleteSale(_ context.Context, saleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.sales[saleID]; !ok {
		return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
	}
	s.data.purge(saleID, s.data.parcelIDsOf(saleID))
	return nil
}

func (d *state) parcelIDsOf(saleID string) map[string]bool {
	ids := make(map[string]bool)
	for id, p := range d.parcels {
		if p.SaleID == saleID {
			ids[id] = true
		}
	}
	return ids
}

// purge removes the live rows of a sale, cascading to its parcels and adjustments.
func (d *state) purge(saleID string, parcelIDs map[string]bool) {
	kept := d.adjustments[:0]
	for _, a := range d.adjustments {
		if !parcelIDs[a.ParcelID] {
			kept = append(kept, a)
		}
	}
	d.adjustments = kept
	for id := range parcelIDs {
		delete(d.parcels, id)
	}
	delete(d.sales, saleID)
}

// --- parcels ---

func (s *Store) FindParcelByID(_ context.Context, parcelID string) (*domain.Parcel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data.parcels[parcelID]
	if !ok {
		return nil, fmt.Errorf("%w: parcel %s", apperrors.ErrNotFound, parcelID)
	}
	return &p, nil
}

func (s *Store) ListParcels(_ context.Context) ([]domain.Parcel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedParcels(s.data.parcels, func(domain.Parcel) bool { return true }), nil
}

func (s *Store) ListParcelsBySale(_ context.Context, saleID string) ([]domain.Parcel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedParcels(s.data.parcels, func(p domain.Parcel) bool { return p.SaleID == saleID }), nil
}

func (s *Store) ListArchivedParcelsBySale(_ context.Context, saleID string) ([]domain.Parcel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedParcels(s.data.archivedParcels, func(p domain.Parcel) bool { return p.SaleID == saleID }), nil
}

func sortedParcels(parcels map[string]domain.Parcel, keep func(domain.Parcel) bool) []domain.Parcel {
	out := make([]domain.Parcel, 0)
	for _, p := range parcels {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate != out[j].DueDate {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].Number < out[j].Number
	})
	return out
}

// --- adjustments ---

func (s *Store) ListAdjustmentsByParcel(_ context.Context, parcelID string) ([]domain.Adjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedAdjustments(s.data.adjustments, func(a domain.Adjustment) bool { return a.ParcelID == parcelID }), nil
}

func (s *Store) ListAdjustmentsBySale(_ context.Context, saleID string) ([]domain.Adjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.data.parcelIDsOf(saleID)
	return sortedAdjustments(s.data.adjustments, func(a domain.Adjustment) bool { return ids[a.ParcelID] }), nil
}

func (s *Store) ListAdjustments(_ context.Context) ([]domain.Adjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedAdjustments(s.data.adjustments, func(domain.Adjustment) bool { return true }), nil
}

func (s *Store) ListArchivedAdjustments(_ context.Context) ([]domain.Adjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedAdjustments(s.data.archivedAdjustments, func(domain.Adjustment) bool { return true }), nil
}

func (s *Store) ListArchivedAdjustmentsBySale(_ context.Context, saleID string) ([]domain.Adjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make(map[string]bool)
	for id, p := range s.data.archivedParcels {
		if p.SaleID == saleID {
			ids[id] = true
		}
	}
	return sortedAdjustments(s.data.archivedAdjustments, func(a domain.Adjustment) bool { return ids[a.ParcelID] }), nil
}

func (s *Store) SaveAdjustment(_ context.Context, adjustment domain.Adjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.parcels[adjustment.ParcelID]; !ok {
		return fmt.Errorf("%w: parcel %s", apperrors.ErrNotFound, adjustment.ParcelID)
	}
	s.data.adjustments = append(s.data.adjustments, adjustment)
	return nil
}

// sortedAdjustments keeps insertion order for equal timestamps.
func sortedAdjustments(adjustments []domain.Adjustment, keep func(domain.Adjustment) bool) []domain.Adjustment {
	out := make([]domain.Adjustment, 0)
	for _, a := range adjustments {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
