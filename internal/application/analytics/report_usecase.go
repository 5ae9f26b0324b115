package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

const (
	reportTopProducts  = 5
	reportRecentOrders = 5
)

var hundred = decimal.NewFromInt(100)

// ReportUseCase reportes de negocio, reporte diario y vistas unificadas de pedidos
// (ventas antiguas + pedidos multi-línea, marcados con is_new_order).
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	sales         repository.SaleRepository
	orders        repository.OrderRepository
	cache         ports.ReportCache
	ttl           time.Duration
	formats       map[string]ExportFormat
}

// NewReportUseCase construye el caso de uso. cache puede ser nil.
func NewReportUseCase(
	analyticsRepo repository.AnalyticsRepository,
	sales repository.SaleRepository,
	orders repository.OrderRepository,
	cache ports.ReportCache,
	ttl time.Duration,
) *ReportUseCase {
	return &ReportUseCase{
		analyticsRepo: analyticsRepo,
		sales:         sales,
		orders:        orders,
		cache:         cache,
		ttl:           ttl,
		formats:       make(map[string]ExportFormat),
	}
}

// RegisterFormat habilita un formato de exportación del reporte diario (ej. "xlsx", "pdf").
func (uc *ReportUseCase) RegisterFormat(name string, f ExportFormat) {
	uc.formats[strings.ToLower(name)] = f
}

// AllOrders historial completo, fecha de venta más reciente primero.
func (uc *ReportUseCase) AllOrders(ctx context.Context) ([]dto.OrderViewDTO, error) {
	return cached(ctx, uc.cache, "orders:all", uc.ttl, func() ([]dto.OrderViewDTO, error) {
		views, err := recentOrders(ctx, uc.sales, uc.orders, 0)
		if err != nil {
			return nil, err
		}
		return dto.NewOrderViewList(views), nil
	})
}

// OrdersByDate pedidos de una fecha (vacío = hoy), creación más reciente primero.
func (uc *ReportUseCase) OrdersByDate(ctx context.Context, date string) ([]dto.OrderViewDTO, error) {
	d, err := ledger.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return cached(ctx, uc.cache, "orders:"+ledger.FormatDate(d), uc.ttl, func() ([]dto.OrderViewDTO, error) {
		views, err := ordersOn(ctx, uc.sales, uc.orders, d)
		if err != nil {
			return nil, err
		}
		return dto.NewOrderViewList(views), nil
	})
}

// CombinedStats conteos y revenue de productos de ambos modelos, total y del día.
func (uc *ReportUseCase) CombinedStats(ctx context.Context) (*dto.CombinedStatsDTO, error) {
	today := ledger.Today()
	return cached(ctx, uc.cache, "stats:"+ledger.FormatDate(today), uc.ttl, func() (*dto.CombinedStatsDTO, error) {
		var all, day repository.RevenueTotals
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			all, err = uc.analyticsRepo.GetRevenueTotals(gctx, repository.Period{})
			return err
		})
		g.Go(func() (err error) {
			day, err = uc.analyticsRepo.GetRevenueTotals(gctx, repository.SingleDay(today))
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("estadísticas combinadas: %w", err)
		}
		return &dto.CombinedStatsDTO{
			TotalSales:   all.SaleCount,
			TotalOrders:  all.OrderCount,
			TotalRevenue: all.Revenue,
			TodaySales:   day.SaleCount,
			TodayOrders:  day.OrderCount,
			TodayRevenue: day.Revenue,
		}, nil
	})
}

// BusinessReport costo total, ingreso por productos, ganancia, margen, top 5 productos
// y los 5 pedidos más recientes.
func (uc *ReportUseCase) BusinessReport(ctx context.Context) (*dto.BusinessReportDTO, error) {
	return cached(ctx, uc.cache, "report:summary", uc.ttl, func() (*dto.BusinessReportDTO, error) {
		var (
			purchases repository.PurchaseTotals
			revenue   repository.RevenueTotals
			top       []repository.ProductSalesResult
			recent    []ledger.OrderView
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			purchases, err = uc.analyticsRepo.GetPurchaseTotals(gctx, repository.Period{})
			return err
		})
		g.Go(func() (err error) {
			revenue, err = uc.analyticsRepo.GetRevenueTotals(gctx, repository.Period{})
			return err
		})
		g.Go(func() (err error) {
			top, err = uc.analyticsRepo.GetTopProducts(gctx, reportTopProducts)
			return err
		})
		g.Go(func() (err error) {
			recent, err = recentOrders(gctx, uc.sales, uc.orders, reportRecentOrders)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("reporte de negocio: %w", err)
		}

		profit := revenue.Revenue - purchases.TotalCost
		topDTO := make([]dto.TopProductDTO, 0, len(top))
		for _, p := range top {
			topDTO = append(topDTO, dto.TopProductDTO{
				ProductName: p.ProductName,
				Unit:        p.Unit,
				Quantity:    p.Quantity,
				Revenue:     p.Revenue,
			})
		}
		return &dto.BusinessReportDTO{
			TotalPurchaseCost: purchases.TotalCost,
			TotalSalesRevenue: revenue.Revenue,
			TotalProfit:       profit,
			ProfitMargin:      margin(profit, revenue.Revenue),
			TotalProducts:     purchases.Count,
			TotalSales:        revenue.SaleCount + revenue.OrderCount,
			TopProducts:       topDTO,
			RecentOrders:      dto.NewOrderViewList(recent),
		}, nil
	})
}

// DailyReport una fila por fecha con compras o ventas, fechas descendentes.
func (uc *ReportUseCase) DailyReport(ctx context.Context) (*dto.DailyReportDTO, error) {
	return cached(ctx, uc.cache, "report:daily", uc.ttl, func() (*dto.DailyReportDTO, error) {
		totals, err := uc.analyticsRepo.GetDailyTotals(ctx)
		if err != nil {
			return nil, fmt.Errorf("reporte diario: %w", err)
		}
		rows := make([]dto.DailyReportRowDTO, 0, len(totals))
		for _, t := range totals {
			profit := t.SalesRevenue - t.PurchaseCost
			rows = append(rows, dto.DailyReportRowDTO{
				Date:          ledger.FormatDate(t.Date),
				PurchaseCount: t.PurchaseCount,
				PurchaseCost:  t.PurchaseCost,
				OrderCount:    t.OrderCount,
				SalesRevenue:  t.SalesRevenue,
				PaidRevenue:   t.PaidRevenue,
				UnpaidRevenue: t.UnpaidRevenue,
				Profit:        profit,
				ProfitMargin:  margin(profit, t.SalesRevenue),
			})
		}
		return &dto.DailyReportDTO{Rows: rows, GeneratedAt: time.Now()}, nil
	})
}

// ExportDailyReport genera el reporte diario en el formato pedido.
func (uc *ReportUseCase) ExportDailyReport(ctx context.Context, format string) (*ExportFile, error) {
	f, ok := uc.formats[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: formato de exportación %q no soportado", domain.ErrInvalidInput, format)
	}
	report, err := uc.DailyReport(ctx)
	if err != nil {
		return nil, err
	}
	content, err := f.Renderer.RenderDailyReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("exportar reporte diario (%s): %w", format, err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("reporte-diario-%s.%s", ledger.FormatDate(ledger.Today()), f.Extension),
		ContentType: f.ContentType,
		Content:     content,
	}, nil
}

// margin ganancia / ingreso * 100 con 2 decimales; 0 si no hubo ingreso.
func margin(profit, revenue int64) decimal.Decimal {
	if revenue <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(profit).Div(decimal.NewFromInt(revenue)).Mul(hundred).Round(2)
}
