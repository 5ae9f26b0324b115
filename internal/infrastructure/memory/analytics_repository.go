package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados calculados recorriendo el estado en memoria.
type AnalyticsRepo struct {
	s *Store
}

func inPeriod(d time.Time, p repository.Period) bool {
	if p.From != nil && d.Before(*p.From) {
		return false
	}
	if p.To != nil && d.After(*p.To) {
		return false
	}
	return true
}

// GetPurchaseTotals cantidad y costo de los lotes ingresados en el periodo.
func (r *AnalyticsRepo) GetPurchaseTotals(ctx context.Context, period repository.Period) (repository.PurchaseTotals, error) {
	var out repository.PurchaseTotals
	err := r.s.access(ctx, false, func(st *state) error {
		for _, b := range st.batches {
			if inPeriod(b.PurchaseDate, period) {
				out.Count++
				out.TotalCost += b.TotalCost
			}
		}
		return nil
	})
	return out, err
}

// GetRevenueTotals ingresos de ventas antiguas y pedidos del periodo.
func (r *AnalyticsRepo) GetRevenueTotals(ctx context.Context, period repository.Period) (repository.RevenueTotals, error) {
	var out repository.RevenueTotals
	err := r.s.access(ctx, false, func(st *state) error {
		for _, s := range st.sales {
			if !inPeriod(s.SaleDate, period) {
				continue
			}
			v := ledger.FromSale(hydrateSale(st, s))
			out.SaleCount++
			out.Revenue += v.TotalRevenue
			out.ActualRevenue += v.ActualRevenue
		}
		for _, o := range st.orders {
			if !inPeriod(o.SaleDate, period) {
				continue
			}
			v := ledger.FromOrder(hydrateOrder(st, o))
			out.OrderCount++
			out.Revenue += v.TotalRevenue
			out.ActualRevenue += v.ActualRevenue
		}
		return nil
	})
	return out, err
}

// GetDailyExpenseTotal suma de gastos diarios del periodo.
func (r *AnalyticsRepo) GetDailyExpenseTotal(ctx context.Context, period repository.Period) (int64, error) {
	var total int64
	err := r.s.access(ctx, false, func(st *state) error {
		for _, e := range st.daily {
			if inPeriod(e.ExpenseDate, period) {
				total += e.Amount
			}
		}
		return nil
	})
	return total, err
}

// GetTopProducts productos por ingreso descendente (empate: nombre ascendente).
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, limit int) ([]repository.ProductSalesResult, error) {
	acc := make(map[string]*repository.ProductSalesResult)
	add := func(name, unit string, qty decimal.Decimal, revenue int64) {
		if name == "" {
			name = "Unknown"
		}
		p, ok := acc[name]
		if !ok {
			p = &repository.ProductSalesResult{ProductName: name, Unit: unit}
			acc[name] = p
		}
		p.Quantity = p.Quantity.Add(qty)
		p.Revenue += revenue
	}
	err := r.s.access(ctx, false, func(st *state) error {
		for _, s := range st.sales {
			b := st.batches[s.PurchaseID]
			add(b.ProductName, b.Unit, s.Quantity, s.TotalRevenue)
		}
		for _, lines := range st.lines {
			for _, l := range lines {
				b := st.batches[l.PurchaseID]
				add(b.ProductName, b.Unit, l.Quantity, l.TotalPrice)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.ProductSalesResult, 0, len(acc))
	for _, p := range acc {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].ProductName < out[j].ProductName
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetDailyTotals compras y ventas agrupadas por fecha, descendentes.
func (r *AnalyticsRepo) GetDailyTotals(ctx context.Context) ([]repository.DailyTotalsResult, error) {
	acc := make(map[string]*repository.DailyTotalsResult)
	row := func(d time.Time) *repository.DailyTotalsResult {
		key := ledger.FormatDate(d)
		t, ok := acc[key]
		if !ok {
			t = &repository.DailyTotalsResult{Date: d}
			acc[key] = t
		}
		return t
	}
	addSale := func(d time.Time, revenue int64, status string) {
		t := row(d)
		t.OrderCount++
		t.SalesRevenue += revenue
		if status == ledger.StatusPaid {
			t.PaidRevenue += revenue
		} else {
			t.UnpaidRevenue += revenue
		}
	}
	err := r.s.access(ctx, false, func(st *state) error {
		for _, b := range st.batches {
			t := row(b.PurchaseDate)
			t.PurchaseCount++
			t.PurchaseCost += b.TotalCost
		}
		for _, s := range st.sales {
			addSale(s.SaleDate, s.TotalRevenue, s.PaymentStatus)
		}
		for _, o := range st.orders {
			addSale(o.SaleDate, hydrateOrder(st, o).TotalRevenue(), o.PaymentStatus)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.DailyTotalsResult, 0, len(acc))
	for _, t := range acc {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// GetRecentSaleDates fechas distintas con ventas o pedidos, descendentes.
func (r *AnalyticsRepo) GetRecentSaleDates(ctx context.Context, limit int) ([]time.Time, error) {
	seen := make(map[string]time.Time)
	err := r.s.access(ctx, false, func(st *state) error {
		for _, s := range st.sales {
			seen[ledger.FormatDate(s.SaleDate)] = s.SaleDate
		}
		for _, o := range st.orders {
			seen[ledger.FormatDate(o.SaleDate)] = o.SaleDate
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
