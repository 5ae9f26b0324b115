package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// OrderUseCase pedidos multi-línea (orders + order_items).
type OrderUseCase struct {
	txRunner inventory.TxRunner
	orders   repository.OrderRepository
	cache    ports.ReportCache
}

// NewOrderUseCase construye el caso de uso. cache puede ser nil.
func NewOrderUseCase(txRunner inventory.TxRunner, orders repository.OrderRepository, cache ports.ReportCache) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orders: orders, cache: cache}
}

// Create valida todas las líneas contra el stock (sumando las que comparten lote) antes de escribir;
// si una sola no alcanza no se descuenta nada.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.OrderRequest) (*dto.OrderResponse, error) {
	lines, err := buildLines(in.Items)
	if err != nil {
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
	now := time.Now()
	order := &entity.Order{
		ID:             uuid.New().String(),
		CustomerName:   strings.TrimSpace(in.CustomerName),
		DeliveryMethod: method,
		ShippingFee:    in.ShippingFee,
		AmountPaid:     in.AmountPaid,
		SaleDate:       saleDate,
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
		Lines:          lines,
	}
	applyOrderPayment(order)

	var out *entity.Order
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		if _, err := inventory.NewStockLedger(repos.Batches).Apply(ctx, nil, entity.LineQuantities(lines)); err != nil {
			return err
		}
		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}
		if err := repos.Orders.CreateLines(ctx, order.ID, stampLines(order.ID, lines)); err != nil {
			return err
		}
		out, err = loadOrder(ctx, repos.Orders, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return dto.NewOrderResponse(out), nil
}

// Update reemplaza las líneas del pedido. Por lote: después = remanente + viejo - nuevo;
// si algún lote queda negativo falla sin escribir. Luego actualiza la cabecera y reinserta las líneas.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.OrderRequest) (*dto.OrderResponse, error) {
	lines, err := buildLines(in.Items)
	if err != nil {
		return nil, err
	}
	if err := validateAmountPaid(in.AmountPaid); err != nil {
		return nil, err
	}

	var out *entity.Order
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		order, err := lockOrder(ctx, repos.Orders, id)
		if err != nil {
			return err
		}
		method, err := deliveryMethod(in.DeliveryMethod, order.DeliveryMethod)
		if err != nil {
			return err
		}
		if strings.TrimSpace(in.SaleDate) != "" {
			if order.SaleDate, err = ledger.ParseDate(in.SaleDate); err != nil {
				return err
			}
		}
		if _, err := inventory.NewStockLedger(repos.Batches).Apply(ctx, order.QuantitiesByBatch(), entity.LineQuantities(lines)); err != nil {
			return err
		}

		order.CustomerName = strings.TrimSpace(in.CustomerName)
		order.DeliveryMethod = method
		order.ShippingFee = in.ShippingFee
		order.AmountPaid = in.AmountPaid
		order.Notes = strings.TrimSpace(in.Notes)
		order.Lines = lines
		applyOrderPayment(order)
		order.UpdatedAt = time.Now()
		if err := repos.Orders.Update(ctx, order); err != nil {
			return err
		}
		if err := repos.Orders.DeleteLines(ctx, id); err != nil {
			return err
		}
		if err := repos.Orders.CreateLines(ctx, id, stampLines(id, lines)); err != nil {
			return err
		}
		out, err = loadOrder(ctx, repos.Orders, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return dto.NewOrderResponse(out), nil
}

// Delete devuelve el stock de cada línea y borra líneas y cabecera.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		order, err := lockOrder(ctx, repos.Orders, id)
		if err != nil {
			return err
		}
		if _, err := inventory.NewStockLedger(repos.Batches).Apply(ctx, order.QuantitiesByBatch(), nil); err != nil {
			return err
		}
		if err := repos.Orders.DeleteLines(ctx, id); err != nil {
			return err
		}
		return repos.Orders.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return nil
}

// TogglePayment cambio rápido a paid o unpaid; total = suma de líneas + envío.
func (uc *OrderUseCase) TogglePayment(ctx context.Context, id, status string) (*dto.OrderResponse, error) {
	var out *entity.Order
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		order, err := lockOrder(ctx, repos.Orders, id)
		if err != nil {
			return err
		}
		p, err := ledger.TogglePayment(orderPaymentInput(order), status)
		if err != nil {
			return err
		}
		order.AmountPaid = p.AmountPaid
		order.AmountRemaining = p.AmountRemaining
		order.PaymentStatus = p.Status
		order.UpdatedAt = time.Now()
		if err := repos.Orders.Update(ctx, order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return dto.NewOrderResponse(out), nil
}

// GetByID obtiene un pedido con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := loadOrder(ctx, uc.orders, id)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(order), nil
}

// buildLines valida y deriva el precio unitario de cada línea. Price es el total de la línea.
func buildLines(items []dto.OrderLineRequest) ([]entity.OrderLine, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: el pedido necesita al menos un producto", domain.ErrInvalidInput)
	}
	lines := make([]entity.OrderLine, 0, len(items))
	for i, it := range items {
		if err := validateSaleLine(it.PurchaseID, it.Quantity, it.Price); err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		lines = append(lines, entity.OrderLine{
			PurchaseID: strings.TrimSpace(it.PurchaseID),
			Quantity:   it.Quantity,
			UnitPrice:  ledger.UnitPrice(it.Price, it.Quantity),
			TotalPrice: it.Price,
		})
	}
	return lines, nil
}

func stampLines(orderID string, lines []entity.OrderLine) []entity.OrderLine {
	out := make([]entity.OrderLine, len(lines))
	for i, l := range lines {
		l.ID = uuid.New().String()
		l.OrderID = orderID
		out[i] = l
	}
	return out
}

func loadOrder(ctx context.Context, repo repository.OrderRepository, id string) (*entity.Order, error) {
	order, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	return order, nil
}

// lockOrder bloquea la cabecera antes de leer las líneas comprometidas.
func lockOrder(ctx context.Context, repo repository.OrderRepository, id string) (*entity.Order, error) {
	order, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	return order, nil
}

func orderPaymentInput(o *entity.Order) ledger.PaymentInput {
	return ledger.PaymentInput{
		BaseRevenue: o.TotalRevenue(),
		ShippingFee: o.ShippingFee,
		AmountPaid:  o.AmountPaid,
	}
}

func applyOrderPayment(o *entity.Order) {
	p := ledger.ComputePayment(orderPaymentInput(o))
	o.AmountRemaining = p.AmountRemaining
	o.PaymentStatus = p.Status
}
