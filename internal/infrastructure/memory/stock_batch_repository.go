package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo lotes de stock en memoria.
type StockBatchRepo struct {
	s    *Store
	inTx bool
}

// Create inserta un lote.
func (r *StockBatchRepo) Create(ctx context.Context, batch *entity.StockBatch) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		if batch.Version == 0 {
			batch.Version = 1
		}
		st.batches[batch.ID] = *batch
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *StockBatchRepo) GetByID(ctx context.Context, id string) (*entity.StockBatch, error) {
	var out *entity.StockBatch
	err := r.s.access(ctx, r.inTx, func(st *state) error {
		if b, ok := st.batches[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria el bloqueo es el mutex de la transacción.
func (r *StockBatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockBatch, error) {
	return r.GetByID(ctx, id)
}

// Update reescribe el lote si la versión coincide e incrementa batch.Version.
func (r *StockBatchRepo) Update(ctx context.Context, batch *entity.StockBatch) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		cur, ok := st.batches[batch.ID]
		if !ok {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, batch.ID)
		}
		if cur.Version != batch.Version {
			return fmt.Errorf("%w: lote %s", domain.ErrConcurrentUpdate, batch.ID)
		}
		batch.Version++
		st.batches[batch.ID] = *batch
		return nil
	})
}

// UpdateRemaining fija el remanente con chequeo de versión.
func (r *StockBatchRepo) UpdateRemaining(ctx context.Context, id string, remaining decimal.Decimal, version int64) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		cur, ok := st.batches[id]
		if !ok {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
		}
		if cur.Version != version {
			return fmt.Errorf("%w: lote %s", domain.ErrConcurrentUpdate, id)
		}
		cur.RemainingQuantity = remaining
		cur.Version++
		cur.UpdatedAt = time.Now()
		st.batches[id] = cur
		return nil
	})
}

// Delete elimina el lote.
func (r *StockBatchRepo) Delete(ctx context.Context, id string) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		if _, ok := st.batches[id]; !ok {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
		}
		delete(st.batches, id)
		return nil
	})
}

// List filtra y ordena según BatchFilter.
func (r *StockBatchRepo) List(ctx context.Context, filter repository.BatchFilter) ([]*entity.StockBatch, error) {
	var out []*entity.StockBatch
	err := r.s.access(ctx, r.inTx, func(st *state) error {
		for _, b := range st.batches {
			b := b
			if filter.InStockOnly && !b.InStock() {
				continue
			}
			if filter.Date != nil && !b.PurchaseDate.Equal(*filter.Date) {
				continue
			}
			out = append(out, &b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch filter.OrderBy {
		case repository.BatchOrderProduct:
			if a.ProductName != b.ProductName {
				return a.ProductName < b.ProductName
			}
		case repository.BatchOrderRemaining:
			if !a.RemainingQuantity.Equal(b.RemainingQuantity) {
				return a.RemainingQuantity.GreaterThan(b.RemainingQuantity)
			}
		default:
			if !a.PurchaseDate.Equal(b.PurchaseDate) {
				return a.PurchaseDate.After(b.PurchaseDate)
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// CountReferences ventas y líneas de pedido que apuntan al lote.
func (r *StockBatchRepo) CountReferences(ctx context.Context, id string) (int, error) {
	n := 0
	err := r.s.access(ctx, r.inTx, func(st *state) error {
		for _, s := range st.sales {
			if s.PurchaseID == id {
				n++
			}
		}
		for _, lines := range st.lines {
			for _, l := range lines {
				if l.PurchaseID == id {
					n++
				}
			}
		}
		return nil
	})
	return n, err
}
