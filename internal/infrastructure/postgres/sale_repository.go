package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository        = (*SaleRepo)(nil)
	_ repository.SaleExpenseRepository = (*SaleExpenseRepo)(nil)
)

var saleColumns = []string{
	"s.id", "s.purchase_id", "s.quantity", "s.unit_price", "s.total_revenue", "s.shipping_fee",
	"s.customer_name", "s.delivery_method", "s.amount_paid", "s.amount_remaining", "s.sale_date",
	"s.payment_status", "s.notes", "s.notes_internal", "s.created_at", "s.updated_at",
	"p.product_name", "p.unit",
}

var expenseColumns = []string{"id", "sale_id", "expense_type", "description", "amount", "created_at"}

// SaleRepo ventas antiguas (tabla sales) con producto y gastos en las lecturas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) baseSelect() squirrel.SelectBuilder {
	return psql.Select(saleColumns...).
		From("sales s").
		Join("purchases p ON p.id = s.purchase_id")
}

// Create inserta la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := exec(ctx, r.q, "sales.create", psql.Insert("sales").
		Columns("id", "purchase_id", "quantity", "unit_price", "total_revenue", "shipping_fee",
			"customer_name", "delivery_method", "amount_paid", "amount_remaining", "sale_date",
			"payment_status", "notes", "notes_internal", "created_at", "updated_at").
		Values(s.ID, s.PurchaseID, s.Quantity, s.UnitPrice, s.TotalRevenue, s.ShippingFee,
			s.CustomerName, s.DeliveryMethod, s.AmountPaid, s.AmountRemaining, s.SaleDate,
			s.PaymentStatus, s.Notes, s.NotesInternal, s.CreatedAt, s.UpdatedAt))
	return err
}

// GetByID obtiene la venta con sus gastos; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	found, err := getOne(ctx, r.q, "sales.get", &s, r.baseSelect().Where(squirrel.Eq{"s.id": id}))
	if err != nil || !found {
		return nil, err
	}
	if err := r.attachExpenses(ctx, []*entity.Sale{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetForUpdate bloquea solo la fila de sales (los lotes los bloquea el libro de stock, en orden de id)
// y luego lee la venta con sus gastos.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	var locked string
	found, err := getOne(ctx, r.q, "sales.lock", &locked, lockRow("sales", id))
	if err != nil || !found {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update reescribe los campos mutables de la venta.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	tag, err := exec(ctx, r.q, "sales.update", psql.Update("sales").
		Set("purchase_id", s.PurchaseID).
		Set("quantity", s.Quantity).
		Set("unit_price", s.UnitPrice).
		Set("total_revenue", s.TotalRevenue).
		Set("shipping_fee", s.ShippingFee).
		Set("customer_name", s.CustomerName).
		Set("delivery_method", s.DeliveryMethod).
		Set("amount_paid", s.AmountPaid).
		Set("amount_remaining", s.AmountRemaining).
		Set("sale_date", s.SaleDate).
		Set("payment_status", s.PaymentStatus).
		Set("notes", s.Notes).
		Set("notes_internal", s.NotesInternal).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: venta %s", domain.ErrNotFound, s.ID)
	}
	return nil
}

// Delete elimina la venta (los gastos se borran antes, en la misma tx).
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	tag, err := exec(ctx, r.q, "sales.delete", psql.Delete("sales").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	return nil
}

// List ventas por fecha de venta y creación descendentes, con gastos.
func (r *SaleRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Sale, error) {
	q := r.baseSelect().OrderBy("s.sale_date DESC", "s.created_at DESC")
	if filter.Date != nil {
		q = q.Where(squirrel.Eq{"s.sale_date": *filter.Date})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	var list []*entity.Sale
	if err := selectAll(ctx, r.q, "sales.list", &list, q); err != nil {
		return nil, err
	}
	if err := r.attachExpenses(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachExpenses carga los gastos de todas las ventas con una sola consulta.
func (r *SaleRepo) attachExpenses(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, 0, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}
	var expenses []entity.SaleExpense
	q := psql.Select(expenseColumns...).From("expenses").
		Where(squirrel.Eq{"sale_id": ids}).
		OrderBy("created_at ASC")
	if err := selectAll(ctx, r.q, "expenses.list_by_sales", &expenses, q); err != nil {
		return err
	}
	for _, e := range expenses {
		if s, ok := byID[e.SaleID]; ok {
			s.Expenses = append(s.Expenses, e)
		}
	}
	return nil
}

// SaleExpenseRepo gastos ad-hoc (tabla expenses).
type SaleExpenseRepo struct {
	q Querier
}

// NewSaleExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleExpenseRepository(q Querier) *SaleExpenseRepo {
	return &SaleExpenseRepo{q: q}
}

// Create inserta el gasto.
func (r *SaleExpenseRepo) Create(ctx context.Context, e *entity.SaleExpense) error {
	_, err := exec(ctx, r.q, "expenses.create", psql.Insert("expenses").
		Columns(expenseColumns...).
		Values(e.ID, e.SaleID, e.ExpenseType, e.Description, e.Amount, e.CreatedAt))
	return err
}

// GetByID obtiene un gasto; (nil, nil) si no existe.
func (r *SaleExpenseRepo) GetByID(ctx context.Context, id string) (*entity.SaleExpense, error) {
	var e entity.SaleExpense
	found, err := getOne(ctx, r.q, "expenses.get", &e,
		psql.Select(expenseColumns...).From("expenses").Where(squirrel.Eq{"id": id}))
	if err != nil || !found {
		return nil, err
	}
	return &e, nil
}

// Delete elimina un gasto.
func (r *SaleExpenseRepo) Delete(ctx context.Context, id string) error {
	tag, err := exec(ctx, r.q, "expenses.delete", psql.Delete("expenses").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: gasto %s", domain.ErrNotFound, id)
	}
	return nil
}

// DeleteBySale elimina todos los gastos de una venta.
func (r *SaleExpenseRepo) DeleteBySale(ctx context.Context, saleID string) error {
	_, err := exec(ctx, r.q, "expenses.delete_by_sale", psql.Delete("expenses").Where(squirrel.Eq{"sale_id": saleID}))
	return err
}

// ListBySale gastos de la venta por orden de creación.
func (r *SaleExpenseRepo) ListBySale(ctx context.Context, saleID string) ([]entity.SaleExpense, error) {
	var list []entity.SaleExpense
	err := selectAll(ctx, r.q, "expenses.list_by_sale", &list,
		psql.Select(expenseColumns...).From("expenses").
			Where(squirrel.Eq{"sale_id": saleID}).
			OrderBy("created_at ASC"))
	return list, err
}
