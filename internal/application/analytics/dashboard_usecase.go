// Package analytics contiene los casos de uso de lectura: dashboard, reportes de negocio,
// reporte diario (con exportación) e historial unificado de ventas y pedidos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

const (
	dashboardRecentOrders = 15 // pedidos en el widget de recientes
	dashboardRecentDates  = 2  // fechas agrupadas en el dashboard
)

// DashboardUseCase genera el resumen del negocio: totales históricos, del día, inventario
// disponible y pedidos recientes.
//
// Los totales salen de AnalyticsRepository (sumas en el almacén); las listas de los repositorios
// de lotes, ventas y pedidos.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	batches       repository.StockBatchRepository
	sales         repository.SaleRepository
	orders        repository.OrderRepository
	cache         ports.ReportCache
	ttl           time.Duration
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	batches repository.StockBatchRepository,
	sales repository.SaleRepository,
	orders repository.OrderRepository,
	cache ports.ReportCache,
	ttl time.Duration,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		batches:       batches,
		sales:         sales,
		orders:        orders,
		cache:         cache,
		ttl:           ttl,
	}
}

// GetSummary construye el DashboardDTO del día actual.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardDTO, error) {
	today := ledger.Today()
	return cached(ctx, uc.cache, "dashboard:"+ledger.FormatDate(today), uc.ttl, func() (*dto.DashboardDTO, error) {
		return uc.build(ctx, today)
	})
}

func (uc *DashboardUseCase) build(ctx context.Context, today time.Time) (*dto.DashboardDTO, error) {
	var (
		total, todayTotals dto.PeriodTotalsDTO
		inventory          []*entity.StockBatch
		recent             []ledger.OrderView
		groups             []dto.OrderDateGroupDTO
	)

	// ── Consultas en paralelo ─────────────────────────────────────────────────
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := periodTotals(gctx, uc.analyticsRepo, repository.Period{})
		total = t
		return wrap("totales", err)
	})
	g.Go(func() error {
		t, err := periodTotals(gctx, uc.analyticsRepo, repository.SingleDay(today))
		todayTotals = t
		return wrap("totales de hoy", err)
	})
	g.Go(func() error {
		list, err := uc.batches.List(gctx, repository.BatchFilter{InStockOnly: true, OrderBy: repository.BatchOrderRemaining})
		inventory = list
		return wrap("inventario", err)
	})
	g.Go(func() error {
		views, err := recentOrders(gctx, uc.sales, uc.orders, dashboardRecentOrders)
		recent = views
		return wrap("pedidos recientes", err)
	})
	g.Go(func() error {
		gr, err := uc.recentDateGroups(gctx)
		groups = gr
		return wrap("pedidos por fecha", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardDTO{
		Date:          ledger.FormatDate(today),
		Total:         total,
		Today:         todayTotals,
		TotalProducts: total.PurchaseCount,
		RecentOrders:  dto.NewOrderViewList(recent),
		RecentDates:   groups,
		Inventory:     dto.NewPurchaseList(inventory),
		GeneratedAt:   time.Now(),
	}, nil
}

// recentDateGroups pedidos completos de las fechas de venta más recientes.
func (uc *DashboardUseCase) recentDateGroups(ctx context.Context) ([]dto.OrderDateGroupDTO, error) {
	dates, err := uc.analyticsRepo.GetRecentSaleDates(ctx, dashboardRecentDates)
	if err != nil {
		return nil, err
	}
	groups := make([]dto.OrderDateGroupDTO, 0, len(dates))
	for _, d := range dates {
		views, err := ordersOn(ctx, uc.sales, uc.orders, d)
		if err != nil {
			return nil, err
		}
		groups = append(groups, dto.OrderDateGroupDTO{
			Date:   ledger.FormatDate(d),
			Orders: dto.NewOrderViewList(views),
		})
	}
	return groups, nil
}

// periodTotals combina compras, ingresos y gastos diarios de un periodo.
// Profit = ingreso real - costo de compras; RealProfit resta además los gastos diarios.
func periodTotals(ctx context.Context, repo repository.AnalyticsRepository, period repository.Period) (dto.PeriodTotalsDTO, error) {
	purchases, err := repo.GetPurchaseTotals(ctx, period)
	if err != nil {
		return dto.PeriodTotalsDTO{}, err
	}
	revenue, err := repo.GetRevenueTotals(ctx, period)
	if err != nil {
		return dto.PeriodTotalsDTO{}, err
	}
	expenses, err := repo.GetDailyExpenseTotal(ctx, period)
	if err != nil {
		return dto.PeriodTotalsDTO{}, err
	}
	profit := revenue.ActualRevenue - purchases.TotalCost
	return dto.PeriodTotalsDTO{
		PurchaseCost:  purchases.TotalCost,
		PurchaseCount: purchases.Count,
		ActualRevenue: revenue.ActualRevenue,
		DailyExpenses: expenses,
		SaleCount:     revenue.SaleCount,
		OrderCount:    revenue.OrderCount,
		Profit:        profit,
		RealProfit:    profit - expenses,
	}, nil
}

// recentOrders los limit pedidos más recientes de ambos modelos por fecha de venta.
func recentOrders(ctx context.Context, sales repository.SaleRepository, orders repository.OrderRepository, limit int) ([]ledger.OrderView, error) {
	filter := repository.OrderFilter{Limit: limit}
	s, err := sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	o, err := orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := ledger.Merge(s, o, true)
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}

// ordersOn pedidos de ambos modelos de una fecha, más recientes primero.
func ordersOn(ctx context.Context, sales repository.SaleRepository, orders repository.OrderRepository, date time.Time) ([]ledger.OrderView, error) {
	filter := repository.OrderFilter{Date: &date}
	s, err := sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	o, err := orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ledger.Merge(s, o, false), nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}
