package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository        = (*SaleRepo)(nil)
	_ repository.SaleExpenseRepository = (*SaleExpenseRepo)(nil)
)

// SaleRepo ventas antiguas en memoria.
type SaleRepo struct {
	s    *Store
	inTx bool
}

// Create inserta la venta (sin gastos).
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		if _, ok := st.batches[sale.PurchaseID]; !ok {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, sale.PurchaseID)
		}
		st.sales[sale.ID] = stripSale(*sale)
		return nil
	})
}

// GetByID devuelve la venta con producto y gastos, o (nil, nil).
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.s.access(ctx, r.inTx, func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = hydrateSale(st, s)
		}
		return nil
	})
	return out, err
}

// GetForUpdate igual que GetByID: el almacén ya serializa las transacciones completas.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

// Update reescribe la venta.
func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		if _, ok := st.sales[sale.ID]; !ok {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, sale.ID)
		}
		st.sales[sale.ID] = stripSale(*sale)
		return nil
	})
}

// Delete elimina la venta.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
		}
		delete(st.sales, id)
		return nil
	})
}

// List filtra por fecha. Con fecha ordena por creación descendente; sin fecha por fecha de venta.
func (r *SaleRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.s.access(ctx, r.inTx, func(st *state) error {
		for _, s := range st.sales {
			if filter.Date != nil && !s.SaleDate.Equal(*filter.Date) {
				continue
			}
			out = append(out, hydrateSale(st, s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].SaleDate.After(out[j].SaleDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func stripSale(s entity.Sale) entity.Sale {
	s.ProductName, s.Unit, s.Expenses = "", "", nil
	return s
}

func hydrateSale(st *state, s entity.Sale) *entity.Sale {
	if b, ok := st.batches[s.PurchaseID]; ok {
		s.ProductName, s.Unit = b.ProductName, b.Unit
	}
	s.Expenses = expensesOf(st, s.ID)
	return &s
}

func expensesOf(st *state, saleID string) []entity.SaleExpense {
	var out []entity.SaleExpense
	for _, e := range st.expenses {
		if e.SaleID == saleID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// SaleExpenseRepo gastos de ventas en memoria.
type SaleExpenseRepo struct {
	s    *Store
	inTx bool
}

// Create inserta el gasto.
func (r *SaleExpenseRepo) Create(ctx context.Context, expense *entity.SaleExpense) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		if _, ok := st.sales[expense.SaleID]; !ok {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, expense.SaleID)
		}
		st.expenses[expense.ID] = *expense
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *SaleExpenseRepo) GetByID(ctx context.Context, id string) (*entity.SaleExpense, error) {
	var out *entity.SaleExpense
	err := r.s.access(ctx, r.inTx, func(st *state) error {
		if e, ok := st.expenses[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

// Delete elimina el gasto.
func (r *SaleExpenseRepo) Delete(ctx context.Context, id string) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		if _, ok := st.expenses[id]; !ok {
			return fmt.Errorf("%w: gasto %s", domain.ErrNotFound, id)
		}
		delete(st.expenses, id)
		return nil
	})
}

// DeleteBySale elimina todos los gastos de la venta.
func (r *SaleExpenseRepo) DeleteBySale(ctx context.Context, saleID string) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		for id, e := range st.expenses {
			if e.SaleID == saleID {
				delete(st.expenses, id)
			}
		}
		return nil
	})
}

// ListBySale gastos de la venta por orden de creación.
func (r *SaleExpenseRepo) ListBySale(ctx context.Context, saleID string) ([]entity.SaleExpense, error) {
	var out []entity.SaleExpense
	err := r.s.access(ctx, r.inTx, func(st *state) error {
		out = expensesOf(st, saleID)
		return nil
	})
	return out, err
}
