package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// DailyExpenseRepository gastos operativos diarios (tabla daily_expenses).
type DailyExpenseRepository interface {
	Create(ctx context.Context, expense *entity.DailyExpense) error
	GetByID(ctx context.Context, id string) (*entity.DailyExpense, error)
	Delete(ctx context.Context, id string) error
	ListByDate(ctx context.Context, date time.Time) ([]*entity.DailyExpense, error)
}
