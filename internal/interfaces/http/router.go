package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/expense"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PurchaseUC     *inventory.PurchaseUseCase
	RestockUC      *inventory.ReplenishmentUseCase
	SaleUC         *sales.SaleUseCase
	OrderUC        *sales.OrderUseCase
	DailyExpenseUC *expense.DailyExpenseUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	ReportUC       *appanalytics.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ingresos de mercancía e inventario
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.RestockUC)
	purchases := api.Group("/purchases")
	purchases.Get("/", purchaseHandler.List)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Put("/:id", purchaseHandler.Update)
	purchases.Delete("/:id", purchaseHandler.Delete)
	api.Get("/inventory", purchaseHandler.Inventory)
	api.Get("/inventory/restock", purchaseHandler.Replenishment)

	// Ventas de un lote (modelo antiguo)
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup := api.Group("/sales")
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Delete("/expenses/:expenseId", saleHandler.DeleteExpense)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Patch("/:id", saleHandler.UpdateDetails)
	salesGroup.Put("/:id", saleHandler.UpdateComplete)
	salesGroup.Delete("/:id", saleHandler.Delete)
	salesGroup.Patch("/:id/payment", saleHandler.TogglePayment)
	salesGroup.Post("/:id/expenses", saleHandler.AddExpense)

	// Pedidos multi-línea
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Patch("/:id/payment", orderHandler.TogglePayment)

	// Gastos operativos diarios
	dailyHandler := NewDailyExpenseHandler(deps.DailyExpenseUC)
	daily := api.Group("/daily-expenses")
	daily.Get("/", dailyHandler.List)
	daily.Post("/", dailyHandler.Create)
	daily.Delete("/:id", dailyHandler.Delete)

	// Dashboard y reportes
	api.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).GetSummary)

	reportHandler := NewReportHandler(deps.ReportUC)
	reports := api.Group("/reports")
	reports.Get("/orders", reportHandler.Orders)
	reports.Get("/stats", reportHandler.Stats)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/daily", reportHandler.Daily)
	reports.Get("/daily/export", reportHandler.ExportDaily)
}
