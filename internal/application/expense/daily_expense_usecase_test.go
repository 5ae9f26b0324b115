package expense_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/expense"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/infrastructure/cache"
	"github.com/jhoicas/ledger-api/internal/infrastructure/memory"
)

func TestDailyExpense_CrearListarBorrar(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	c := cache.NewMemoryCache()
	uc := expense.NewDailyExpenseUseCase(store.DailyExpenses(), c)
	require.NoError(t, c.Set(ctx, 0, "dashboard", 1, 0))

	fuel, err := uc.Create(ctx, dto.CreateDailyExpenseRequest{
		ExpenseDate: "2026-10-18", ExpenseType: "fuel", Description: " gasolina moto ", Amount: 40_000,
	})
	require.NoError(t, err)
	assert.Equal(t, "gasolina moto", fuel.Description)
	assert.Equal(t, 0, c.Len(), "crear un gasto invalida los reportes")

	_, err = uc.Create(ctx, dto.CreateDailyExpenseRequest{
		ExpenseDate: "2026-10-18", ExpenseType: "rent", Description: "arriendo bodega", Amount: 60_000,
	})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateDailyExpenseRequest{
		ExpenseDate: "2026-10-17", ExpenseType: "other", Description: "otro día", Amount: 1_000,
	})
	require.NoError(t, err)

	day, err := uc.ListByDate(ctx, "2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", day.Date)
	assert.Equal(t, int64(100_000), day.Total)
	assert.Len(t, day.Expenses, 2)

	require.NoError(t, uc.Delete(ctx, fuel.ID))
	day, err = uc.ListByDate(ctx, "2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, int64(60_000), day.Total)

	assert.ErrorIs(t, uc.Delete(ctx, fuel.ID), domain.ErrNotFound)
}

func TestDailyExpense_Validacion(t *testing.T) {
	uc := expense.NewDailyExpenseUseCase(memory.NewStore().DailyExpenses(), nil)
	cases := []struct {
		name string
		in   dto.CreateDailyExpenseRequest
	}{
		{"tipo desconocido", dto.CreateDailyExpenseRequest{ExpenseType: "viaje", Description: "x", Amount: 1}},
		{"sin descripción", dto.CreateDailyExpenseRequest{ExpenseType: "fuel", Description: "  ", Amount: 1}},
		{"monto cero", dto.CreateDailyExpenseRequest{ExpenseType: "fuel", Description: "x"}},
		{"monto negativo", dto.CreateDailyExpenseRequest{ExpenseType: "fuel", Description: "x", Amount: -5}},
		{"fecha inválida", dto.CreateDailyExpenseRequest{ExpenseDate: "18-10-2026", ExpenseType: "fuel", Description: "x", Amount: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
