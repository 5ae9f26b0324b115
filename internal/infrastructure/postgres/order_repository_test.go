package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

func TestInsertLines_GuardaPosicion(t *testing.T) {
	lines := []entity.OrderLine{
		{ID: "l-b", PurchaseID: "p-2", Quantity: decimal.NewFromInt(3), UnitPrice: 20_000, TotalPrice: 60_000},
		{ID: "l-a", PurchaseID: "p-1", Quantity: decimal.NewFromInt(5), UnitPrice: 20_000, TotalPrice: 100_000},
	}
	sql, args, err := insertLines("o-1", lines).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "position")
	require.Len(t, args, 16)
	assert.Equal(t, "l-b", args[0])
	assert.Equal(t, 0, args[7])
	assert.Equal(t, "l-a", args[8])
	assert.Equal(t, 1, args[15])
}

func TestSelectLines_OrdenPorPosicion(t *testing.T) {
	sql, args, err := selectLines([]string{"o-1", "o-2"}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY li.order_id, li.position")
	assert.Equal(t, []any{"o-1", "o-2"}, args)
}

func TestLockRow(t *testing.T) {
	sql, args, err := lockRow("orders", "o-1").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM orders WHERE id = $1 FOR UPDATE", sql)
	assert.Equal(t, []any{"o-1"}, args)
}
