package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard y reportes.
// Los extremos nil del periodo se envían como NULL y desactivan el filtro.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetPurchaseTotals cantidad y costo de lotes ingresados en el periodo.
func (r *AnalyticsRepo) GetPurchaseTotals(ctx context.Context, period repository.Period) (repository.PurchaseTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                           AS purchase_count,
	    COALESCE(SUM(total_cost), 0)::BIGINT AS total_cost
	FROM purchases
	WHERE ($1::DATE IS NULL OR purchase_date >= $1)
	  AND ($2::DATE IS NULL OR purchase_date <= $2)`

	var out repository.PurchaseTotals
	if err := r.q.QueryRow(ctx, query, period.From, period.To).Scan(&out.Count, &out.TotalCost); err != nil {
		return out, storeErr("analytics.GetPurchaseTotals", err)
	}
	return out, nil
}

// GetRevenueTotals ingresos de ventas antiguas y pedidos.
// Ingreso real: productos + envío + gastos ad-hoc (estos solo existen en ventas antiguas).
func (r *AnalyticsRepo) GetRevenueTotals(ctx context.Context, period repository.Period) (repository.RevenueTotals, error) {
	const query = `
	WITH s AS (
	    SELECT
	        COUNT(*)                                                          AS n,
	        COALESCE(SUM(s.total_revenue), 0)                                 AS revenue,
	        COALESCE(SUM(s.total_revenue + s.shipping_fee + COALESCE(e.total, 0)), 0) AS actual
	    FROM sales s
	    LEFT JOIN (SELECT sale_id, SUM(amount) AS total FROM expenses GROUP BY sale_id) e
	           ON e.sale_id = s.id
	    WHERE ($1::DATE IS NULL OR s.sale_date >= $1)
	      AND ($2::DATE IS NULL OR s.sale_date <= $2)
	),
	o AS (
	    SELECT
	        COUNT(*)                                               AS n,
	        COALESCE(SUM(COALESCE(li.total, 0)), 0)                AS revenue,
	        COALESCE(SUM(COALESCE(li.total, 0) + o.shipping_fee), 0) AS actual
	    FROM orders o
	    LEFT JOIN (SELECT order_id, SUM(total_price) AS total FROM order_items GROUP BY order_id) li
	           ON li.order_id = o.id
	    WHERE ($1::DATE IS NULL OR o.sale_date >= $1)
	      AND ($2::DATE IS NULL OR o.sale_date <= $2)
	)
	SELECT s.n, o.n, (s.revenue + o.revenue)::BIGINT, (s.actual + o.actual)::BIGINT
	FROM s, o`

	var out repository.RevenueTotals
	err := r.q.QueryRow(ctx, query, period.From, period.To).
		Scan(&out.SaleCount, &out.OrderCount, &out.Revenue, &out.ActualRevenue)
	if err != nil {
		return out, storeErr("analytics.GetRevenueTotals", err)
	}
	return out, nil
}

// GetDailyExpenseTotal suma de gastos operativos del periodo.
func (r *AnalyticsRepo) GetDailyExpenseTotal(ctx context.Context, period repository.Period) (int64, error) {
	const query = `
	SELECT COALESCE(SUM(amount), 0)::BIGINT
	FROM daily_expenses
	WHERE ($1::DATE IS NULL OR expense_date >= $1)
	  AND ($2::DATE IS NULL OR expense_date <= $2)`

	var total int64
	if err := r.q.QueryRow(ctx, query, period.From, period.To).Scan(&total); err != nil {
		return 0, storeErr("analytics.GetDailyExpenseTotal", err)
	}
	return total, nil
}

// GetTopProducts agrupa por nombre de producto las líneas de ambos modelos.
// limit 0 = sin límite (LIMIT NULL).
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, limit int) ([]repository.ProductSalesResult, error) {
	const query = `
	SELECT
	    COALESCE(NULLIF(p.product_name, ''), 'Unknown') AS product_name,
	    MIN(p.unit)                                     AS unit,
	    SUM(x.quantity)                                 AS quantity,
	    SUM(x.revenue)::BIGINT                          AS revenue
	FROM (
	    SELECT purchase_id, quantity, total_revenue AS revenue FROM sales
	    UNION ALL
	    SELECT purchase_id, quantity, total_price   AS revenue FROM order_items
	) x
	JOIN purchases p ON p.id = x.purchase_id
	GROUP BY 1
	ORDER BY revenue DESC, product_name ASC
	LIMIT NULLIF($1::INT, 0)`

	var results []repository.ProductSalesResult
	if err := pgxscan.Select(ctx, r.q, &results, query, limit); err != nil {
		return nil, storeErr("analytics.GetTopProducts", err)
	}
	if results == nil {
		results = []repository.ProductSalesResult{}
	}
	return results, nil
}

// GetDailyTotals compras y ventas agrupadas por fecha (FULL JOIN: días solo con compras o solo con ventas).
// Un pedido cuenta como pagado solo en estado paid; partial suma a no pagado.
func (r *AnalyticsRepo) GetDailyTotals(ctx context.Context) ([]repository.DailyTotalsResult, error) {
	const query = `
	WITH p AS (
	    SELECT purchase_date AS d, COUNT(*) AS n, SUM(total_cost) AS cost
	    FROM purchases
	    GROUP BY purchase_date
	),
	sv AS (
	    SELECT sale_date AS d, total_revenue AS revenue, payment_status AS status FROM sales
	    UNION ALL
	    SELECT o.sale_date, COALESCE(SUM(li.total_price), 0), o.payment_status
	    FROM orders o
	    LEFT JOIN order_items li ON li.order_id = o.id
	    GROUP BY o.id
	),
	sa AS (
	    SELECT
	        d,
	        COUNT(*)                                          AS n,
	        SUM(revenue)                                      AS revenue,
	        SUM(revenue) FILTER (WHERE status = 'paid')       AS paid,
	        SUM(revenue) FILTER (WHERE status <> 'paid')      AS unpaid
	    FROM sv
	    GROUP BY d
	)
	SELECT
	    COALESCE(p.d, sa.d)                AS date,
	    COALESCE(p.n, 0)                   AS purchase_count,
	    COALESCE(p.cost, 0)::BIGINT        AS purchase_cost,
	    COALESCE(sa.n, 0)                  AS order_count,
	    COALESCE(sa.revenue, 0)::BIGINT    AS sales_revenue,
	    COALESCE(sa.paid, 0)::BIGINT       AS paid_revenue,
	    COALESCE(sa.unpaid, 0)::BIGINT     AS unpaid_revenue
	FROM p
	FULL OUTER JOIN sa ON sa.d = p.d
	ORDER BY date DESC`

	var results []repository.DailyTotalsResult
	if err := pgxscan.Select(ctx, r.q, &results, query); err != nil {
		return nil, storeErr("analytics.GetDailyTotals", err)
	}
	return results, nil
}

// GetRecentSaleDates fechas distintas con ventas o pedidos, descendentes.
func (r *AnalyticsRepo) GetRecentSaleDates(ctx context.Context, limit int) ([]time.Time, error) {
	const query = `
	SELECT d FROM (
	    SELECT sale_date AS d FROM sales
	    UNION
	    SELECT sale_date FROM orders
	) x
	ORDER BY d DESC
	LIMIT NULLIF($1::INT, 0)`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, storeErr("analytics.GetRecentSaleDates", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("analytics.GetRecentSaleDates scan: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("analytics.GetRecentSaleDates", err)
	}
	return dates, nil
}
