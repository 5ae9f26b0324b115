package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.DailyExpenseRepository = (*DailyExpenseRepo)(nil)

var dailyExpenseColumns = []string{"id", "expense_date", "expense_type", "description", "amount", "created_at"}

// DailyExpenseRepo gastos operativos diarios.
type DailyExpenseRepo struct {
	q Querier
}

func NewDailyExpenseRepository(q Querier) *DailyExpenseRepo {
	return &DailyExpenseRepo{q: q}
}

func (r *DailyExpenseRepo) Create(ctx context.Context, e *entity.DailyExpense) error {
	_, err := exec(ctx, r.q, "daily_expenses.create", psql.Insert("daily_expenses").
		Columns(dailyExpenseColumns...).
		Values(e.ID, e.ExpenseDate, e.ExpenseType, e.Description, e.Amount, e.CreatedAt))
	return err
}

func (r *DailyExpenseRepo) GetByID(ctx context.Context, id string) (*entity.DailyExpense, error) {
	var e entity.DailyExpense
	found, err := getOne(ctx, r.q, "daily_expenses.get", &e,
		psql.Select(dailyExpenseColumns...).From("daily_expenses").Where(squirrel.Eq{"id": id}))
	if err != nil || !found {
		return nil, err
	}
	return &e, nil
}

func (r *DailyExpenseRepo) Delete(ctx context.Context, id string) error {
	tag, err := exec(ctx, r.q, "daily_expenses.delete", psql.Delete("daily_expenses").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: gasto diario %s", domain.ErrNotFound, id)
	}
	return nil
}

// ListByDate gastos del día en orden de creación.
func (r *DailyExpenseRepo) ListByDate(ctx context.Context, date time.Time) ([]*entity.DailyExpense, error) {
	var list []*entity.DailyExpense
	err := selectAll(ctx, r.q, "daily_expenses.list", &list,
		psql.Select(dailyExpenseColumns...).From("daily_expenses").
			Where(squirrel.Eq{"expense_date": date}).
			OrderBy("created_at ASC"))
	return list, err
}
