package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.DailyExpenseRepository = (*DailyExpenseRepo)(nil)

// DailyExpenseRepo gastos diarios en memoria.
type DailyExpenseRepo struct {
	s *Store
}

// Create inserta el gasto.
func (r *DailyExpenseRepo) Create(ctx context.Context, expense *entity.DailyExpense) error {
	return r.s.access(ctx, false, func(st *state) error {
		st.daily[expense.ID] = *expense
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *DailyExpenseRepo) GetByID(ctx context.Context, id string) (*entity.DailyExpense, error) {
	var out *entity.DailyExpense
	err := r.s.access(ctx, false, func(st *state) error {
		if e, ok := st.daily[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

// Delete elimina el gasto.
func (r *DailyExpenseRepo) Delete(ctx context.Context, id string) error {
	return r.s.access(ctx, false, func(st *state) error {
		if _, ok := st.daily[id]; !ok {
			return fmt.Errorf("%w: gasto diario %s", domain.ErrNotFound, id)
		}
		delete(st.daily, id)
		return nil
	})
}

// ListByDate gastos del día en orden de registro.
func (r *DailyExpenseRepo) ListByDate(ctx context.Context, date time.Time) ([]*entity.DailyExpense, error) {
	var out []*entity.DailyExpense
	err := r.s.access(ctx, false, func(st *state) error {
		for _, e := range st.daily {
			e := e
			if e.ExpenseDate.Equal(date) {
				out = append(out, &e)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}
