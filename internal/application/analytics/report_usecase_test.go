package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/expense"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/sales"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/infrastructure/cache"
	"github.com/jhoicas/ledger-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario común (todo con fecha de hoy):
//   Arroz 100 kg por 1.000.000; Frijol 50 kg por 400.000
//   venta antigua: 30 kg de Arroz por 450.000 + envío 10.000, sin pago
//   pedido: 5 kg de Arroz por 100.000 + 3 kg de Frijol por 60.000, pagado
//   gasto diario: 50.000
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	store     *memory.Store
	cache     *cache.MemoryCache
	purchases *inventory.PurchaseUseCase
	sales     *sales.SaleUseCase
	orders    *sales.OrderUseCase
	expenses  *expense.DailyExpenseUseCase
	dashboard *analytics.DashboardUseCase
	reports   *analytics.ReportUseCase
}

func newEnv() *env {
	store := memory.NewStore()
	c := cache.NewMemoryCache()
	return &env{
		store:     store,
		cache:     c,
		purchases: inventory.NewPurchaseUseCase(store, store.Batches(), c),
		sales:     sales.NewSaleUseCase(store, store.Sales(), c),
		orders:    sales.NewOrderUseCase(store, store.Orders(), c),
		expenses:  expense.NewDailyExpenseUseCase(store.DailyExpenses(), c),
		dashboard: analytics.NewDashboardUseCase(store.Analytics(), store.Batches(), store.Sales(), store.Orders(), c, time.Minute),
		reports:   analytics.NewReportUseCase(store.Analytics(), store.Sales(), store.Orders(), c, time.Minute),
	}
}

func (e *env) seed(t *testing.T) (arroz, frijol string) {
	t.Helper()
	ctx := context.Background()
	today := ledger.FormatDate(ledger.Today())

	a, err := e.purchases.Create(ctx, dto.CreatePurchaseRequest{
		ProductName: "Arroz", Unit: "kg", Quantity: decimal.NewFromInt(100), TotalCost: 1_000_000,
	})
	require.NoError(t, err)
	b, err := e.purchases.Create(ctx, dto.CreatePurchaseRequest{
		ProductName: "Frijol", Unit: "kg", Quantity: decimal.NewFromInt(50), TotalCost: 400_000,
	})
	require.NoError(t, err)

	_, err = e.sales.Create(ctx, dto.CreateSaleRequest{
		PurchaseID: a.ID, Quantity: decimal.NewFromInt(30), TotalPrice: 450_000, ShippingFee: 10_000, SaleDate: today,
	})
	require.NoError(t, err)
	_, err = e.orders.Create(ctx, dto.OrderRequest{
		AmountPaid: 160_000,
		Items: []dto.OrderLineRequest{
			{PurchaseID: a.ID, Quantity: decimal.NewFromInt(5), Price: 100_000},
			{PurchaseID: b.ID, Quantity: decimal.NewFromInt(3), Price: 60_000},
		},
	})
	require.NoError(t, err)
	_, err = e.expenses.Create(ctx, dto.CreateDailyExpenseRequest{
		ExpenseDate: today, ExpenseType: "fuel", Description: "gasolina", Amount: 50_000,
	})
	require.NoError(t, err)
	return a.ID, b.ID
}

func TestDashboard_TotalesYGanancia(t *testing.T) {
	e := newEnv()
	arroz, frijol := e.seed(t)

	d, err := e.dashboard.GetSummary(context.Background())
	require.NoError(t, err)

	for _, p := range []dto.PeriodTotalsDTO{d.Total, d.Today} {
		assert.Equal(t, int64(1_400_000), p.PurchaseCost)
		assert.Equal(t, 2, p.PurchaseCount)
		assert.Equal(t, int64(620_000), p.ActualRevenue)
		assert.Equal(t, int64(50_000), p.DailyExpenses)
		assert.Equal(t, 1, p.SaleCount)
		assert.Equal(t, 1, p.OrderCount)
		assert.Equal(t, int64(-780_000), p.Profit)
		assert.Equal(t, int64(-830_000), p.RealProfit)
	}
	assert.Equal(t, 2, d.TotalProducts)
	assert.Len(t, d.RecentOrders, 2)
	require.Len(t, d.RecentDates, 1)
	assert.Len(t, d.RecentDates[0].Orders, 2)

	require.Len(t, d.Inventory, 2)
	assert.Equal(t, arroz, d.Inventory[0].ID, "inventario ordenado por remanente descendente")
	assert.True(t, d.Inventory[0].RemainingQuantity.Equal(decimal.NewFromInt(65)))
	assert.Equal(t, frijol, d.Inventory[1].ID)
	assert.True(t, d.Inventory[1].RemainingQuantity.Equal(decimal.NewFromInt(47)))
}

func TestBusinessReport_MargenYTopProductos(t *testing.T) {
	e := newEnv()
	e.seed(t)

	r, err := e.reports.BusinessReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1_400_000), r.TotalPurchaseCost)
	assert.Equal(t, int64(610_000), r.TotalSalesRevenue)
	assert.Equal(t, int64(-790_000), r.TotalProfit)
	assert.Equal(t, "-129.51", r.ProfitMargin.StringFixed(2))
	assert.Equal(t, 2, r.TotalProducts)
	assert.Equal(t, 2, r.TotalSales)

	require.Len(t, r.TopProducts, 2)
	assert.Equal(t, "Arroz", r.TopProducts[0].ProductName)
	assert.Equal(t, int64(550_000), r.TopProducts[0].Revenue)
	assert.True(t, r.TopProducts[0].Quantity.Equal(decimal.NewFromInt(35)))
	assert.Equal(t, "Frijol", r.TopProducts[1].ProductName)
	assert.Len(t, r.RecentOrders, 2)
}

func TestBusinessReport_SinVentasMargenCero(t *testing.T) {
	e := newEnv()
	_, err := e.purchases.Create(context.Background(), dto.CreatePurchaseRequest{
		ProductName: "Arroz", Unit: "kg", Quantity: decimal.NewFromInt(10), TotalCost: 100_000,
	})
	require.NoError(t, err)

	r, err := e.reports.BusinessReport(context.Background())
	require.NoError(t, err)
	assert.True(t, r.ProfitMargin.IsZero())
	assert.Equal(t, int64(-100_000), r.TotalProfit)
	assert.Empty(t, r.TopProducts)
}

func TestDailyReport_PagadoVsPendiente(t *testing.T) {
	e := newEnv()
	e.seed(t)

	r, err := e.reports.DailyReport(context.Background())
	require.NoError(t, err)
	require.Len(t, r.Rows, 1)

	row := r.Rows[0]
	assert.Equal(t, ledger.FormatDate(ledger.Today()), row.Date)
	assert.Equal(t, 2, row.PurchaseCount)
	assert.Equal(t, 2, row.OrderCount)
	assert.Equal(t, int64(610_000), row.SalesRevenue)
	assert.Equal(t, int64(160_000), row.PaidRevenue)
	assert.Equal(t, int64(450_000), row.UnpaidRevenue)
	assert.Equal(t, int64(-790_000), row.Profit)
	assert.Equal(t, "-129.51", row.ProfitMargin.StringFixed(2))
}

func TestCombinedStats(t *testing.T) {
	e := newEnv()
	e.seed(t)

	s, err := e.reports.CombinedStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.TotalSales)
	assert.Equal(t, 1, s.TotalOrders)
	assert.Equal(t, int64(610_000), s.TotalRevenue)
	assert.Equal(t, s.TotalRevenue, s.TodayRevenue)
}

func TestOrdersByDate_MarcaModelo(t *testing.T) {
	e := newEnv()
	e.seed(t)

	list, err := e.reports.OrdersByDate(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 2)

	var nuevos int
	for _, v := range list {
		if v.IsNewOrder {
			nuevos++
			assert.Equal(t, ledger.StatusPaid, v.PaymentStatus)
			assert.Len(t, v.Items, 2)
		} else {
			assert.Equal(t, int64(460_000), v.ActualRevenue)
		}
	}
	assert.Equal(t, 1, nuevos)

	empty, err := e.reports.OrdersByDate(context.Background(), "2020-01-01")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = e.reports.OrdersByDate(context.Background(), "ayer")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché: se sirve hasta la siguiente mutación confirmada
// ──────────────────────────────────────────────────────────────────────────────

func TestCache_SeInvalidaTrasMutacion(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	arroz, _ := e.seed(t)

	first, err := e.reports.CombinedStats(ctx)
	require.NoError(t, err)

	// Una escritura que no pasa por el caché deja el resultado viejo a la vista.
	silent := sales.NewSaleUseCase(e.store, e.store.Sales(), nil)
	_, err = silent.Create(ctx, dto.CreateSaleRequest{
		PurchaseID: arroz, Quantity: decimal.NewFromInt(1), TotalPrice: 15_000, SaleDate: ledger.FormatDate(ledger.Today()),
	})
	require.NoError(t, err)
	stale, err := e.reports.CombinedStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.TotalSales, stale.TotalSales)

	// Cualquier mutación por los casos de uso invalida.
	_, err = e.expenses.Create(ctx, dto.CreateDailyExpenseRequest{
		ExpenseDate: ledger.FormatDate(ledger.Today()), ExpenseType: "other", Description: "bolsas", Amount: 1_000,
	})
	require.NoError(t, err)
	fresh, err := e.reports.CombinedStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.TotalSales+1, fresh.TotalSales)
	assert.Equal(t, first.TotalRevenue+15_000, fresh.TotalRevenue)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación
// ──────────────────────────────────────────────────────────────────────────────

type fakeRenderer struct{ rows int }

func (r *fakeRenderer) RenderDailyReport(_ context.Context, report *dto.DailyReportDTO) ([]byte, error) {
	r.rows = len(report.Rows)
	return []byte("ok"), nil
}

func TestExportDailyReport(t *testing.T) {
	e := newEnv()
	e.seed(t)
	renderer := &fakeRenderer{}
	e.reports.RegisterFormat("CSV", analytics.ExportFormat{Extension: "csv", ContentType: "text/csv", Renderer: renderer})

	f, err := e.reports.ExportDailyReport(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", f.ContentType)
	assert.Equal(t, "reporte-diario-"+ledger.FormatDate(ledger.Today())+".csv", f.Filename)
	assert.Equal(t, []byte("ok"), f.Content)
	assert.Equal(t, 1, renderer.rows)

	_, err = e.reports.ExportDailyReport(context.Background(), "docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
