// seed carga datos de demostración (ingresos, ventas, un pedido multi-línea y gastos diarios)
// pasando por los casos de uso, de modo que el stock queda consistente.
//
// Uso: go run ./cmd/seed [-days 7]
// Usa la misma configuración que la API (DATABASE_URL / DB_*). Aplica migraciones antes.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/expense"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/sales"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ledger-api/pkg/config"
	"github.com/jhoicas/ledger-api/pkg/logger"
)

type product struct {
	name     string
	unit     string
	quantity int64
	cost     int64
	price    int64 // precio unitario de venta
}

var catalog = []product{
	{name: "Gạo ST25", unit: "kg", quantity: 100, cost: 1800000, price: 28000},
	{name: "Cà phê Robusta", unit: "kg", quantity: 40, cost: 3200000, price: 120000},
	{name: "Nước mắm", unit: "chai", quantity: 60, cost: 1500000, price: 45000},
}

func main() {
	began := time.Now()
	days := flag.Int("days", 7, "días hacia atrás con ventas de ejemplo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx := context.Background()
	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	purchaseUC := inventory.NewPurchaseUseCase(txRunner, postgres.NewStockBatchRepository(pool), nil)
	saleUC := sales.NewSaleUseCase(txRunner, postgres.NewSaleRepository(pool), nil)
	orderUC := sales.NewOrderUseCase(txRunner, postgres.NewOrderRepository(pool), nil)
	dailyUC := expense.NewDailyExpenseUseCase(postgres.NewDailyExpenseRepository(pool), nil)

	start := ledger.Today().AddDate(0, 0, -*days)
	ids := make([]string, 0, len(catalog))
	for _, p := range catalog {
		out, err := purchaseUC.Create(ctx, dto.CreatePurchaseRequest{
			ProductName:  p.name,
			Unit:         p.unit,
			Quantity:     decimal.NewFromInt(p.quantity),
			TotalCost:    p.cost,
			PurchaseDate: ledger.FormatDate(start),
			SupplierName: "Proveedor demo",
		})
		if err != nil {
			log.Fatal().Err(err).Str("producto", p.name).Msg("crear ingreso")
		}
		ids = append(ids, out.ID)
	}

	var created int
	for d := 1; d <= *days; d++ {
		date := ledger.FormatDate(start.AddDate(0, 0, d))
		p := catalog[d%len(catalog)]
		qty := int64(d%3 + 1)
		paid := int64(0)
		if d%2 == 0 {
			paid = qty * p.price
		}
		if _, err := saleUC.Create(ctx, dto.CreateSaleRequest{
			PurchaseID:     ids[d%len(catalog)],
			Quantity:       decimal.NewFromInt(qty),
			TotalPrice:     qty * p.price,
			CustomerName:   fmt.Sprintf("Cliente %d", d),
			DeliveryMethod: entity.DeliveryPickup,
			AmountPaid:     paid,
			SaleDate:       date,
		}); err != nil {
			log.Fatal().Err(err).Str("fecha", date).Msg("crear venta")
		}
		created++

		if _, err := dailyUC.Create(ctx, dto.CreateDailyExpenseRequest{
			ExpenseDate: date,
			ExpenseType: entity.DailyExpenseFuel,
			Description: "Xăng giao hàng",
			Amount:      50000,
		}); err != nil {
			log.Fatal().Err(err).Str("fecha", date).Msg("crear gasto diario")
		}
	}

	items := make([]dto.OrderLineRequest, 0, len(catalog))
	for i, p := range catalog {
		items = append(items, dto.OrderLineRequest{
			PurchaseID: ids[i],
			Quantity:   decimal.NewFromInt(2),
			Price:      2 * p.price,
		})
	}
	if _, err := orderUC.Create(ctx, dto.OrderRequest{
		CustomerName:   "Pedido demo",
		DeliveryMethod: entity.DeliveryDelivery,
		ShippingFee:    30000,
		SaleDate:       ledger.FormatDate(ledger.Today()),
		Items:          items,
	}); err != nil {
		log.Fatal().Err(err).Msg("crear pedido")
	}

	log.Info().
		Int("ingresos", len(ids)).
		Int("ventas", created).
		Dur("duración", time.Since(began)).
		Msg("datos de demostración cargados")
}
