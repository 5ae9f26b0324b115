package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Period rango inclusivo de fechas de negocio; nil en un extremo = sin límite.
type Period struct {
	From *time.Time
	To   *time.Time
}

// SingleDay periodo de un solo día.
func SingleDay(d time.Time) Period {
	return Period{From: &d, To: &d}
}

// PurchaseTotals totales de ingresos de mercancía.
type PurchaseTotals struct {
	Count     int
	TotalCost int64
}

// RevenueTotals totales de ventas de ambos modelos.
// Revenue es la suma de productos; ActualRevenue suma además envío y gastos ad-hoc (solo ventas antiguas).
type RevenueTotals struct {
	SaleCount     int
	OrderCount    int
	Revenue       int64
	ActualRevenue int64
}

// ProductSalesResult ventas acumuladas por nombre de producto (ambos modelos).
type ProductSalesResult struct {
	ProductName string
	Unit        string
	Quantity    decimal.Decimal
	Revenue     int64
}

// DailyTotalsResult resultado crudo por fecha para el reporte diario.
// PaidRevenue cuenta solo pedidos en estado paid; UnpaidRevenue el resto.
type DailyTotalsResult struct {
	Date          time.Time
	PurchaseCount int
	PurchaseCost  int64
	OrderCount    int
	SalesRevenue  int64
	PaidRevenue   int64
	UnpaidRevenue int64
}

// AnalyticsRepository consultas agregadas de solo lectura para dashboard y reportes.
// Las sumas se resuelven en el almacén; no se cargan filas completas en memoria.
type AnalyticsRepository interface {
	GetPurchaseTotals(ctx context.Context, period Period) (PurchaseTotals, error)
	GetRevenueTotals(ctx context.Context, period Period) (RevenueTotals, error)
	GetDailyExpenseTotal(ctx context.Context, period Period) (int64, error)
	// GetTopProducts productos ordenados por ingreso descendente.
	GetTopProducts(ctx context.Context, limit int) ([]ProductSalesResult, error)
	// GetDailyTotals una fila por fecha con compras o ventas, fechas descendentes.
	GetDailyTotals(ctx context.Context) ([]DailyTotalsResult, error)
	// GetRecentSaleDates fechas distintas con ventas o pedidos, descendentes.
	GetRecentSaleDates(ctx context.Context, limit int) ([]time.Time, error)
}
