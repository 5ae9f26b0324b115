// Package sales contiene los casos de uso de conciliación de ventas: ventas antiguas de un solo
// lote (con gastos ad-hoc) y pedidos multi-línea. Cada operación corre en una única transacción
// que toca el libro de stock y el registro del pedido.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// SaleUseCase ventas antiguas (tabla sales) y sus gastos.
type SaleUseCase struct {
	txRunner inventory.TxRunner
	sales    repository.SaleRepository
	cache    ports.ReportCache
}

// NewSaleUseCase construye el caso de uso. cache puede ser nil.
func NewSaleUseCase(txRunner inventory.TxRunner, sales repository.SaleRepository, cache ports.ReportCache) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, sales: sales, cache: cache}
}

// Create descuenta el lote e inserta la venta con sus montos derivados.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateSaleLine(in.PurchaseID, in.Quantity, in.TotalPrice); err != nil {
		return nil, err
	}
	if err := validateAmountPaid(in.AmountPaid); err != nil {
		return nil, err
	}
	saleDate, err := ledger.ParseDate(in.SaleDate)
	if err != nil {
		return nil, err
	}
	method, err := deliveryMethod(in.DeliveryMethod, entity.DeliveryPickup)
	if err != nil {
		return nil, err
	}
	payment := ledger.ComputePayment(ledger.PaymentInput{
		BaseRevenue: in.TotalPrice,
		ShippingFee: in.ShippingFee,
		AmountPaid:  in.AmountPaid,
	})
	now := time.Now()
	sale := &entity.Sale{
		ID:              uuid.New().String(),
		PurchaseID:      in.PurchaseID,
		Quantity:        in.Quantity,
		UnitPrice:       ledger.UnitPrice(in.TotalPrice, in.Quantity),
		TotalRevenue:    in.TotalPrice,
		ShippingFee:     in.ShippingFee,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		DeliveryMethod:  method,
		AmountPaid:      payment.AmountPaid,
		AmountRemaining: payment.AmountRemaining,
		SaleDate:        saleDate,
		PaymentStatus:   payment.Status,
		Notes:           strings.TrimSpace(in.Notes),
		NotesInternal:   strings.TrimSpace(in.NotesInternal),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var out *entity.Sale
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		if err := inventory.NewStockLedger(repos.Batches).Decrement(ctx, sale.PurchaseID, sale.Quantity); err != nil {
			return err
		}
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		out, err = loadSale(ctx, repos.Sales, sale.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return dto.NewSaleResponse(out), nil
}

// UpdateDetails edita solo pago, envío, cliente y notas. Nunca toca el stock.
func (uc *SaleUseCase) UpdateDetails(ctx context.Context, id string, in dto.UpdateSaleDetailsRequest) (*dto.SaleResponse, error) {
	if err := validateAmountPaid(in.AmountPaid); err != nil {
		return nil, err
	}
	var out *entity.Sale
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		sale, err := lockSale(ctx, repos.Sales, id)
		if err != nil {
			return err
		}
		method, err := deliveryMethod(in.DeliveryMethod, sale.DeliveryMethod)
		if err != nil {
			return err
		}
		sale.CustomerName = strings.TrimSpace(in.CustomerName)
		sale.DeliveryMethod = method
		sale.ShippingFee = in.ShippingFee
		sale.AmountPaid = in.AmountPaid
		sale.Notes = strings.TrimSpace(in.Notes)
		sale.NotesInternal = strings.TrimSpace(in.NotesInternal)
		applySalePayment(sale)
		sale.UpdatedAt = time.Now()
		if err := repos.Sales.Update(ctx, sale); err != nil {
			return err
		}
		out = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return dto.NewSaleResponse(out), nil
}

// UpdateComplete edita lote, cantidad, ingreso, fecha y pago. El stock se concilia por efecto neto:
// mismo lote ajusta la diferencia; lote distinto devuelve al viejo y descuenta del nuevo.
func (uc *SaleUseCase) UpdateComplete(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateSaleLine(in.PurchaseID, in.Quantity, in.TotalRevenue); err != nil {
		return nil, err
	}
	if err := validateAmountPaid(in.AmountPaid); err != nil {
		return nil, err
	}
	saleDate, err := ledger.ParseDate(in.SaleDate)
	if err != nil {
		return nil, err
	}

	var out *entity.Sale
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		sale, err := lockSale(ctx, repos.Sales, id)
		if err != nil {
			return err
		}
		method, err := deliveryMethod(in.DeliveryMethod, sale.DeliveryMethod)
		if err != nil {
			return err
		}
		committed := map[string]decimal.Decimal{sale.PurchaseID: sale.Quantity}
		requested := map[string]decimal.Decimal{in.PurchaseID: in.Quantity}
		if _, err := inventory.NewStockLedger(repos.Batches).Apply(ctx, committed, requested); err != nil {
			return err
		}

		sale.PurchaseID = in.PurchaseID
		sale.Quantity = in.Quantity
		sale.TotalRevenue = in.TotalRevenue
		sale.UnitPrice = ledger.UnitPrice(in.TotalRevenue, in.Quantity)
		sale.ShippingFee = in.ShippingFee
		sale.AmountPaid = in.AmountPaid
		sale.CustomerName = strings.TrimSpace(in.CustomerName)
		sale.DeliveryMethod = method
		sale.SaleDate = saleDate
		sale.Notes = strings.TrimSpace(in.Notes)
		sale.NotesInternal = strings.TrimSpace(in.NotesInternal)
		applySalePayment(sale)
		sale.UpdatedAt = time.Now()
		if err := repos.Sales.Update(ctx, sale); err != nil {
			return err
		}
		out, err = loadSale(ctx, repos.Sales, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return dto.NewSaleResponse(out), nil
}

// Delete borra gastos y venta y devuelve la cantidad al lote.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		sale, err := lockSale(ctx, repos.Sales, id)
		if err != nil {
			return err
		}
		if err := repos.SaleExpenses.DeleteBySale(ctx, id); err != nil {
			return err
		}
		if err := repos.Sales.Delete(ctx, id); err != nil {
			return err
		}
		return inventory.NewStockLedger(repos.Batches).Increment(ctx, sale.PurchaseID, sale.Quantity)
	})
	if err != nil {
		return err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return nil
}

// TogglePayment cambio rápido a paid o unpaid; el total incluye envío y gastos.
func (uc *SaleUseCase) TogglePayment(ctx context.Context, id, status string) (*dto.SaleResponse, error) {
	var out *entity.Sale
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		sale, err := lockSale(ctx, repos.Sales, id)
		if err != nil {
			return err
		}
		p, err := ledger.TogglePayment(salePaymentInput(sale), status)
		if err != nil {
			return err
		}
		sale.AmountPaid = p.AmountPaid
		sale.AmountRemaining = p.AmountRemaining
		sale.PaymentStatus = p.Status
		sale.UpdatedAt = time.Now()
		if err := repos.Sales.Update(ctx, sale); err != nil {
			return err
		}
		out = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return dto.NewSaleResponse(out), nil
}

// AddExpense agrega un gasto con signo a la venta y re-deriva saldo y estado.
// No toca el stock ni total_revenue.
func (uc *SaleUseCase) AddExpense(ctx context.Context, saleID string, in dto.AddSaleExpenseRequest) (*dto.SaleResponse, error) {
	if !entity.IsValidSaleExpenseType(in.ExpenseType) {
		return nil, fmt.Errorf("%w: tipo de gasto %q", domain.ErrInvalidInput, in.ExpenseType)
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: la descripción es obligatoria", domain.ErrInvalidInput)
	}

	var out *entity.Sale
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		sale, err := lockSale(ctx, repos.Sales, saleID)
		if err != nil {
			return err
		}
		expense := entity.SaleExpense{
			ID:          uuid.New().String(),
			SaleID:      saleID,
			ExpenseType: in.ExpenseType,
			Description: description,
			Amount:      in.Amount,
			CreatedAt:   time.Now(),
		}
		if err := repos.SaleExpenses.Create(ctx, &expense); err != nil {
			return err
		}
		sale.Expenses = append(sale.Expenses, expense)
		applySalePayment(sale)
		sale.UpdatedAt = time.Now()
		if err := repos.Sales.Update(ctx, sale); err != nil {
			return err
		}
		out = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return dto.NewSaleResponse(out), nil
}

// DeleteExpense elimina un gasto y re-deriva saldo y estado de su venta.
func (uc *SaleUseCase) DeleteExpense(ctx context.Context, expenseID string) (*dto.SaleResponse, error) {
	var out *entity.Sale
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		expense, err := repos.SaleExpenses.GetByID(ctx, expenseID)
		if err != nil {
			return err
		}
		if expense == nil {
			return fmt.Errorf("%w: gasto %s", domain.ErrNotFound, expenseID)
		}
		if _, err := lockSale(ctx, repos.Sales, expense.SaleID); err != nil {
			return err
		}
		if err := repos.SaleExpenses.Delete(ctx, expenseID); err != nil {
			return err
		}
		sale, err := loadSale(ctx, repos.Sales, expense.SaleID)
		if err != nil {
			return err
		}
		applySalePayment(sale)
		sale.UpdatedAt = time.Now()
		if err := repos.Sales.Update(ctx, sale); err != nil {
			return err
		}
		out = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return dto.NewSaleResponse(out), nil
}

// GetByID obtiene una venta con sus gastos.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := loadSale(ctx, uc.sales, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSaleResponse(sale), nil
}

func loadSale(ctx context.Context, repo repository.SaleRepository, id string) (*entity.Sale, error) {
	sale, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	return sale, nil
}

// lockSale bloquea la venta antes de leer lo comprometido; dos ediciones de la misma venta
// nunca parten de la misma cantidad vieja.
func lockSale(ctx context.Context, repo repository.SaleRepository, id string) (*entity.Sale, error) {
	sale, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	return sale, nil
}

func salePaymentInput(s *entity.Sale) ledger.PaymentInput {
	return ledger.PaymentInput{
		BaseRevenue: s.TotalRevenue,
		ShippingFee: s.ShippingFee,
		Expenses:    s.ExpensesTotal(),
		AmountPaid:  s.AmountPaid,
	}
}

// applySalePayment re-deriva saldo y estado conservando lo pagado.
func applySalePayment(s *entity.Sale) {
	p := ledger.ComputePayment(salePaymentInput(s))
	s.AmountRemaining = p.AmountRemaining
	s.PaymentStatus = p.Status
}

func validateAmountPaid(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: el monto pagado no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func validateSaleLine(purchaseID string, quantity decimal.Decimal, total int64) error {
	if strings.TrimSpace(purchaseID) == "" {
		return fmt.Errorf("%w: el lote es obligatorio", domain.ErrInvalidInput)
	}
	if !quantity.IsPositive() {
		return fmt.Errorf("%w: la cantidad debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if total <= 0 {
		return fmt.Errorf("%w: el precio debe ser mayor a 0", domain.ErrInvalidInput)
	}
	return nil
}

func deliveryMethod(m, fallback string) (string, error) {
	m = strings.TrimSpace(m)
	if m == "" {
		return fallback, nil
	}
	if !entity.IsValidDeliveryMethod(m) {
		return "", fmt.Errorf("%w: método de entrega %q", domain.ErrInvalidInput, m)
	}
	return m, nil
}
