package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/expense"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/application/sales"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
	infracache "github.com/jhoicas/ledger-api/internal/infrastructure/cache"
	infraexcel "github.com/jhoicas/ledger-api/internal/infrastructure/excel"
	"github.com/jhoicas/ledger-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ledger-api/internal/interfaces/http"
	"github.com/jhoicas/ledger-api/pkg/config"
	"github.com/jhoicas/ledger-api/pkg/logger"
)

// stores repositorios y runner de transacciones del driver elegido.
type stores struct {
	txRunner  inventory.TxRunner
	batches   repository.StockBatchRepository
	sales     repository.SaleRepository
	orders    repository.OrderRepository
	daily     repository.DailyExpenseRepository
	analytics repository.AnalyticsRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de datos")
	}
	defer st.close()

	reportCache, closeCache := openReportCache(ctx, cfg.Redis, cfg.App.Name, log)
	defer closeCache()

	purchaseUC := inventory.NewPurchaseUseCase(st.txRunner, st.batches, reportCache)
	restockUC := inventory.NewReplenishmentUseCase(st.batches, st.analytics)
	saleUC := sales.NewSaleUseCase(st.txRunner, st.sales, reportCache)
	orderUC := sales.NewOrderUseCase(st.txRunner, st.orders, reportCache)
	dailyExpenseUC := expense.NewDailyExpenseUseCase(st.daily, reportCache)
	dashboardUC := appanalytics.NewDashboardUseCase(st.analytics, st.batches, st.sales, st.orders, reportCache, cfg.Report.CacheTTL)

	reportUC := appanalytics.NewReportUseCase(st.analytics, st.sales, st.orders, reportCache, cfg.Report.CacheTTL)
	reportUC.RegisterFormat("xlsx", appanalytics.ExportFormat{
		Extension:   "xlsx",
		ContentType: infraexcel.ContentType,
		Renderer:    infraexcel.NewDailyReportRenderer(),
	})
	reportUC.RegisterFormat("pdf", appanalytics.ExportFormat{
		Extension:   "pdf",
		ContentType: infrapdf.ContentType,
		Renderer:    infrapdf.NewMarotoPDFGenerator(cfg.App.Name + " · Reporte diario"),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "driver": cfg.DB.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PurchaseUC:     purchaseUC,
		RestockUC:      restockUC,
		SaleUC:         saleUC,
		OrderUC:        orderUC,
		DailyExpenseUC: dailyExpenseUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores abre PostgreSQL (con migraciones si DB_MIGRATE) o el almacén en memoria.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("usando almacén en memoria: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		return &stores{
			txRunner:  mem,
			batches:   mem.Batches(),
			sales:     mem.Sales(),
			orders:    mem.Orders(),
			daily:     mem.DailyExpenses(),
			analytics: mem.Analytics(),
			close:     func() {},
		}, nil
	}

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &stores{
		txRunner:  postgres.NewTxRunner(pool),
		batches:   postgres.NewStockBatchRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
		daily:     postgres.NewDailyExpenseRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
}

// openReportCache Redis si está configurado y responde; si no, caché en memoria del proceso.
func openReportCache(ctx context.Context, cfg config.RedisConfig, prefix string, log *logger.Logger) (ports.ReportCache, func()) {
	if !cfg.Enabled() {
		log.Info().Msg("REDIS_ADDR vacío, caché de reportes en memoria")
		return infracache.NewMemoryCache(), func() {}
	}
	client, err := infracache.NewRedisClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		log.Warn().Err(err).Msg("redis no disponible, caché de reportes en memoria")
		return infracache.NewMemoryCache(), func() {}
	}
	return infracache.NewRedisCache(client, prefix), func() { _ = client.Close() }
}
