package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

var orderColumns = []string{
	"id", "customer_name", "delivery_method", "shipping_fee", "amount_paid", "amount_remaining",
	"sale_date", "payment_status", "notes", "created_at", "updated_at",
}

var orderLineColumns = []string{
	"li.id", "li.order_id", "li.purchase_id", "li.quantity", "li.unit_price", "li.total_price", "li.notes",
	"p.product_name", "p.unit",
}

// OrderRepo pedidos multi-línea (orders + order_items).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera del pedido. Las líneas van por CreateLines.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := exec(ctx, r.q, "orders.create", psql.Insert("orders").
		Columns(orderColumns...).
		Values(o.ID, o.CustomerName, o.DeliveryMethod, o.ShippingFee, o.AmountPaid, o.AmountRemaining,
			o.SaleDate, o.PaymentStatus, o.Notes, o.CreatedAt, o.UpdatedAt))
	return err
}

// CreateLines inserta las líneas en una sola sentencia.
func (r *OrderRepo) CreateLines(ctx context.Context, orderID string, lines []entity.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	_, err := exec(ctx, r.q, "order_items.create", insertLines(orderID, lines))
	return err
}

// insertLines guarda el índice de cada línea en position para leerlas en el orden recibido.
func insertLines(orderID string, lines []entity.OrderLine) squirrel.InsertBuilder {
	ins := psql.Insert("order_items").
		Columns("id", "order_id", "purchase_id", "quantity", "unit_price", "total_price", "notes", "position")
	for i, l := range lines {
		ins = ins.Values(l.ID, orderID, l.PurchaseID, l.Quantity, l.UnitPrice, l.TotalPrice, l.Notes, i)
	}
	return ins
}

// GetByID pedido con líneas; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	found, err := getOne(ctx, r.q, "orders.get", &o,
		psql.Select(orderColumns...).From("orders").Where(squirrel.Eq{"id": id}))
	if err != nil || !found {
		return nil, err
	}
	if err := r.attachLines(ctx, []*entity.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) y lee el pedido con sus líneas.
// Las líneas solo se reescriben con la cabecera bloqueada, así que no necesitan bloqueo propio.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	var locked string
	found, err := getOne(ctx, r.q, "orders.lock", &locked, lockRow("orders", id))
	if err != nil || !found {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update reescribe la cabecera del pedido.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	tag, err := exec(ctx, r.q, "orders.update", psql.Update("orders").
		Set("customer_name", o.CustomerName).
		Set("delivery_method", o.DeliveryMethod).
		Set("shipping_fee", o.ShippingFee).
		Set("amount_paid", o.AmountPaid).
		Set("amount_remaining", o.AmountRemaining).
		Set("sale_date", o.SaleDate).
		Set("payment_status", o.PaymentStatus).
		Set("notes", o.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": o.ID}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, o.ID)
	}
	return nil
}

// DeleteLines elimina todas las líneas del pedido.
func (r *OrderRepo) DeleteLines(ctx context.Context, orderID string) error {
	_, err := exec(ctx, r.q, "order_items.delete", psql.Delete("order_items").Where(squirrel.Eq{"order_id": orderID}))
	return err
}

// Delete elimina la cabecera; las líneas deben haberse borrado antes.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := exec(ctx, r.q, "orders.delete", psql.Delete("orders").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	return nil
}

// List pedidos por fecha de venta y creación descendentes, con líneas.
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	q := psql.Select(orderColumns...).From("orders").OrderBy("sale_date DESC", "created_at DESC")
	if filter.Date != nil {
		q = q.Where(squirrel.Eq{"sale_date": *filter.Date})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	var list []*entity.Order
	if err := selectAll(ctx, r.q, "orders.list", &list, q); err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OrderRepo) attachLines(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}
	var lines []entity.OrderLine
	if err := selectAll(ctx, r.q, "order_items.list", &lines, selectLines(ids)); err != nil {
		return err
	}
	for _, l := range lines {
		if o, ok := byID[l.OrderID]; ok {
			o.Lines = append(o.Lines, l)
		}
	}
	return nil
}

func selectLines(orderIDs []string) squirrel.SelectBuilder {
	return psql.Select(orderLineColumns...).
		From("order_items li").
		Join("purchases p ON p.id = li.purchase_id").
		Where(squirrel.Eq{"li.order_id": orderIDs}).
		OrderBy("li.order_id", "li.position")
}
