package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodTotalsDTO bloque de KPIs de un periodo (total histórico o día actual).
type PeriodTotalsDTO struct {
	PurchaseCost  int64 `json:"purchase_cost"`
	PurchaseCount int   `json:"purchase_count"`
	ActualRevenue int64 `json:"actual_revenue"` // productos + envío + gastos ad-hoc
	DailyExpenses int64 `json:"daily_expenses"`
	SaleCount     int   `json:"sale_count"`  // ventas antiguas
	OrderCount    int   `json:"order_count"` // pedidos multi-línea
	Profit        int64 `json:"profit"`      // ingreso real - costo de compras
	RealProfit    int64 `json:"real_profit"` // profit - gastos diarios
}

// OrderDateGroupDTO pedidos de una fecha.
type OrderDateGroupDTO struct {
	Date   string         `json:"date"`
	Orders []OrderViewDTO `json:"orders"`
}

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	Date          string              `json:"date"`
	Total         PeriodTotalsDTO     `json:"total"`
	Today         PeriodTotalsDTO     `json:"today"`
	TotalProducts int                 `json:"total_products"`
	RecentOrders  []OrderViewDTO      `json:"recent_orders"`
	RecentDates   []OrderDateGroupDTO `json:"recent_dates"`
	Inventory     []PurchaseResponse  `json:"inventory"`
	GeneratedAt   time.Time           `json:"generated_at"`
}

// CombinedStatsDTO conteos y revenue de ambos modelos de pedido.
type CombinedStatsDTO struct {
	TotalSales   int   `json:"total_sales"`
	TotalOrders  int   `json:"total_orders"`
	TotalRevenue int64 `json:"total_revenue"`
	TodaySales   int   `json:"today_sales"`
	TodayOrders  int   `json:"today_orders"`
	TodayRevenue int64 `json:"today_revenue"`
}

// TopProductDTO producto del ranking por ingreso.
type TopProductDTO struct {
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Revenue     int64           `json:"revenue"`
}

// BusinessReportDTO respuesta de GET /api/reports/summary.
type BusinessReportDTO struct {
	TotalPurchaseCost int64           `json:"total_purchase_cost"`
	TotalSalesRevenue int64           `json:"total_sales_revenue"`
	TotalProfit       int64           `json:"total_profit"`
	ProfitMargin      decimal.Decimal `json:"profit_margin"` // porcentaje, 2 decimales
	TotalProducts     int             `json:"total_products"`
	TotalSales        int             `json:"total_sales"`
	TopProducts       []TopProductDTO `json:"top_products"`
	RecentOrders      []OrderViewDTO  `json:"recent_orders"`
}

// DailyReportRowDTO una fecha del reporte diario.
type DailyReportRowDTO struct {
	Date          string          `json:"date"`
	PurchaseCount int             `json:"purchase_count"`
	PurchaseCost  int64           `json:"purchase_cost"`
	OrderCount    int             `json:"order_count"`
	SalesRevenue  int64           `json:"sales_revenue"`
	PaidRevenue   int64           `json:"paid_revenue"`
	UnpaidRevenue int64           `json:"unpaid_revenue"`
	Profit        int64           `json:"profit"`
	ProfitMargin  decimal.Decimal `json:"profit_margin"`
}

// DailyReportDTO respuesta de GET /api/reports/daily.
type DailyReportDTO struct {
	Rows        []DailyReportRowDTO `json:"rows"`
	GeneratedAt time.Time           `json:"generated_at"`
}
