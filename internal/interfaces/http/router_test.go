package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/expense"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/sales"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/infrastructure/cache"
	"github.com/jhoicas/ledger-api/internal/infrastructure/excel"
	"github.com/jhoicas/ledger-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/ledger-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type idOnly struct {
	ID                string `json:"id"`
	RemainingQuantity string `json:"remaining_quantity"`
	PaymentStatus     string `json:"payment_status"`
	AmountRemaining   int64  `json:"amount_remaining"`
}

// buildTestApp arma la API completa sobre el almacén en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	reportCache := cache.NewMemoryCache()

	reportUC := appanalytics.NewReportUseCase(store.Analytics(), store.Sales(), store.Orders(), reportCache, time.Minute)
	reportUC.RegisterFormat("xlsx", appanalytics.ExportFormat{
		Extension: "xlsx", ContentType: excel.ContentType, Renderer: excel.NewDailyReportRenderer(),
	})

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		PurchaseUC:     inventory.NewPurchaseUseCase(store, store.Batches(), reportCache),
		RestockUC:      inventory.NewReplenishmentUseCase(store.Batches(), store.Analytics()),
		SaleUC:         sales.NewSaleUseCase(store, store.Sales(), reportCache),
		OrderUC:        sales.NewOrderUseCase(store, store.Orders(), reportCache),
		DailyExpenseUC: expense.NewDailyExpenseUseCase(store.DailyExpenses(), reportCache),
		DashboardUC:    appanalytics.NewDashboardUseCase(store.Analytics(), store.Batches(), store.Sales(), store.Orders(), reportCache, time.Minute),
		ReportUC:       reportUC,
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	if resp.Header.Get("Content-Type") == fiber.MIMEApplicationJSON {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func createPurchase(t *testing.T, app *fiber.App, name string, qty, cost int64) string {
	t.Helper()
	resp, env := do(t, app, http.MethodPost, "/api/purchases", map[string]any{
		"product_name": name, "unit": "kg", "quantity": qty, "total_cost": cost,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	var p idOnly
	decodeData(t, env, &p)
	return p.ID
}

func today() string { return ledger.FormatDate(ledger.Today()) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestVentaDescuentaStock(t *testing.T) {
	app := buildTestApp(t)
	batchID := createPurchase(t, app, "Arroz", 100, 1000000)

	resp, env := do(t, app, http.MethodPost, "/api/sales", map[string]any{
		"purchase_id": batchID, "quantity": 30, "total_price": 450000, "sale_date": today(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	assert.True(t, env.Success)
	var sale idOnly
	decodeData(t, env, &sale)
	assert.Equal(t, ledger.StatusUnpaid, sale.PaymentStatus)
	assert.Equal(t, int64(450000), sale.AmountRemaining)

	resp, env = do(t, app, http.MethodGet, "/api/purchases/"+batchID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var batch idOnly
	decodeData(t, env, &batch)
	assert.Equal(t, "70", batch.RemainingQuantity)
}

func TestVentaSinStock_409(t *testing.T) {
	app := buildTestApp(t)
	batchID := createPurchase(t, app, "Arroz", 10, 100000)

	resp, env := do(t, app, http.MethodPost, "/api/sales", map[string]any{
		"purchase_id": batchID, "quantity": 11, "total_price": 110000, "sale_date": today(),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Code)
}

func TestValidacion_400(t *testing.T) {
	app := buildTestApp(t)

	resp, env := do(t, app, http.MethodPost, "/api/purchases", map[string]any{"unit": "kg", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.Contains(t, env.Message, "ProductName")

	resp, env = do(t, app, http.MethodPost, "/api/orders", map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestNoEncontrado_404(t *testing.T) {
	app := buildTestApp(t)

	resp, env := do(t, app, http.MethodGet, "/api/sales/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Code)

	resp, env = do(t, app, http.MethodGet, "/api/ruta-inexistente", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestEliminarIngresoConVentas_409(t *testing.T) {
	app := buildTestApp(t)
	batchID := createPurchase(t, app, "Arroz", 10, 100000)
	resp, _ := do(t, app, http.MethodPost, "/api/sales", map[string]any{
		"purchase_id": batchID, "quantity": 1, "total_price": 15000, "sale_date": today(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := do(t, app, http.MethodDelete, "/api/purchases/"+batchID, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", env.Code)
}

func TestPedidoAtomico(t *testing.T) {
	app := buildTestApp(t)
	rice := createPurchase(t, app, "Arroz", 10, 100000)
	beans := createPurchase(t, app, "Frijol", 2, 50000)

	resp, env := do(t, app, http.MethodPost, "/api/orders", map[string]any{
		"sale_date": today(),
		"items": []map[string]any{
			{"purchase_id": rice, "quantity": 5, "price": 75000},
			{"purchase_id": beans, "quantity": 3, "price": 90000},
		},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Code)

	_, env = do(t, app, http.MethodGet, "/api/purchases/"+rice, nil)
	var batch idOnly
	decodeData(t, env, &batch)
	assert.Equal(t, "10", batch.RemainingQuantity)
}

func TestPagoParcialRechazado(t *testing.T) {
	app := buildTestApp(t)
	batchID := createPurchase(t, app, "Arroz", 10, 100000)
	_, env := do(t, app, http.MethodPost, "/api/sales", map[string]any{
		"purchase_id": batchID, "quantity": 1, "total_price": 15000, "sale_date": today(),
	})
	var sale idOnly
	decodeData(t, env, &sale)

	resp, env := do(t, app, http.MethodPatch, "/api/sales/"+sale.ID+"/payment", map[string]any{"status": "partial"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)

	resp, env = do(t, app, http.MethodPatch, "/api/sales/"+sale.ID+"/payment", map[string]any{"status": "paid"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, env, &sale)
	assert.Equal(t, ledger.StatusPaid, sale.PaymentStatus)
	assert.Zero(t, sale.AmountRemaining)
}

func TestDashboardYReportes(t *testing.T) {
	app := buildTestApp(t)
	batchID := createPurchase(t, app, "Arroz", 100, 1000000)
	resp, _ := do(t, app, http.MethodPost, "/api/sales", map[string]any{
		"purchase_id": batchID, "quantity": 30, "total_price": 450000, "sale_date": today(), "amount_paid": 450000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := do(t, app, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash struct {
		Total struct {
			PurchaseCost  int64 `json:"purchase_cost"`
			ActualRevenue int64 `json:"actual_revenue"`
			Profit        int64 `json:"profit"`
		} `json:"total"`
		RecentOrders []json.RawMessage `json:"recent_orders"`
	}
	decodeData(t, env, &dash)
	assert.Equal(t, int64(1000000), dash.Total.PurchaseCost)
	assert.Equal(t, int64(450000), dash.Total.ActualRevenue)
	assert.Equal(t, int64(-550000), dash.Total.Profit)
	assert.Len(t, dash.RecentOrders, 1)

	resp, env = do(t, app, http.MethodGet, "/api/reports/orders?date="+today(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []json.RawMessage
	decodeData(t, env, &orders)
	assert.Len(t, orders, 1)

	resp, _ = do(t, app, http.MethodGet, "/api/reports/orders?date=15-01-2024", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportarReporteDiario(t *testing.T) {
	app := buildTestApp(t)
	createPurchase(t, app, "Arroz", 100, 1000000)

	resp, _ := do(t, app, http.MethodGet, "/api/reports/daily/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, excel.ContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	resp, env := do(t, app, http.MethodGet, "/api/reports/daily/export?format=csv", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestGastosDiarios(t *testing.T) {
	app := buildTestApp(t)

	resp, env := do(t, app, http.MethodPost, "/api/daily-expenses", map[string]any{
		"expense_date": today(), "expense_type": "fuel", "description": "Gasolina", "amount": 50000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	resp, env = do(t, app, http.MethodGet, "/api/daily-expenses?date="+today(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Total    int64             `json:"total"`
		Expenses []json.RawMessage `json:"expenses"`
	}
	decodeData(t, env, &list)
	assert.Equal(t, int64(50000), list.Total)
	assert.Len(t, list.Expenses, 1)

	resp, env = do(t, app, http.MethodPost, "/api/daily-expenses", map[string]any{
		"expense_date": today(), "expense_type": "viaje", "description": "x", "amount": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)
}
