package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

var batchColumns = []string{
	"id", "product_name", "unit", "quantity", "remaining_quantity", "total_cost",
	"purchase_date", "supplier_name", "notes", "version", "created_at", "updated_at",
}

// StockBatchRepo implementación de StockBatchRepository sobre la tabla purchases (usable con pool o tx).
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

// Create inserta un lote con versión 1.
func (r *StockBatchRepo) Create(ctx context.Context, b *entity.StockBatch) error {
	if b.Version == 0 {
		b.Version = 1
	}
	_, err := exec(ctx, r.q, "purchases.create", psql.Insert("purchases").
		Columns(batchColumns...).
		Values(b.ID, b.ProductName, b.Unit, b.Quantity, b.RemainingQuantity, b.TotalCost,
			b.PurchaseDate, b.SupplierName, b.Notes, b.Version, b.CreatedAt, b.UpdatedAt))
	return err
}

// GetByID obtiene un lote; (nil, nil) si no existe.
func (r *StockBatchRepo) GetByID(ctx context.Context, id string) (*entity.StockBatch, error) {
	return r.get(ctx, "purchases.get", psql.Select(batchColumns...).From("purchases").
		Where(squirrel.Eq{"id": id}))
}

// GetForUpdate obtiene el lote y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockBatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockBatch, error) {
	return r.get(ctx, "purchases.get_for_update", psql.Select(batchColumns...).From("purchases").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE"))
}

func (r *StockBatchRepo) get(ctx context.Context, op string, b squirrel.SelectBuilder) (*entity.StockBatch, error) {
	var batch entity.StockBatch
	found, err := getOne(ctx, r.q, op, &batch, b)
	if err != nil || !found {
		return nil, err
	}
	return &batch, nil
}

// Update reescribe los datos del lote con chequeo de versión; incrementa b.Version.
func (r *StockBatchRepo) Update(ctx context.Context, b *entity.StockBatch) error {
	tag, err := exec(ctx, r.q, "purchases.update", psql.Update("purchases").
		Set("product_name", b.ProductName).
		Set("unit", b.Unit).
		Set("quantity", b.Quantity).
		Set("remaining_quantity", b.RemainingQuantity).
		Set("total_cost", b.TotalCost).
		Set("supplier_name", b.SupplierName).
		Set("notes", b.Notes).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		Where(squirrel.Eq{"version": b.Version}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lote %s", domain.ErrConcurrentUpdate, b.ID)
	}
	b.Version++
	return nil
}

// UpdateRemaining fija remaining_quantity si la versión coincide.
func (r *StockBatchRepo) UpdateRemaining(ctx context.Context, id string, remaining decimal.Decimal, version int64) error {
	tag, err := exec(ctx, r.q, "purchases.update_remaining", psql.Update("purchases").
		Set("remaining_quantity", remaining).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"version": version}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lote %s", domain.ErrConcurrentUpdate, id)
	}
	return nil
}

// Delete elimina el lote. Si alguna venta lo referencia la FK lo impide (ErrConflict).
func (r *StockBatchRepo) Delete(ctx context.Context, id string) error {
	tag, err := exec(ctx, r.q, "purchases.delete", psql.Delete("purchases").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	return nil
}

// List filtra y ordena según BatchFilter.
func (r *StockBatchRepo) List(ctx context.Context, filter repository.BatchFilter) ([]*entity.StockBatch, error) {
	q := psql.Select(batchColumns...).From("purchases")
	if filter.InStockOnly {
		q = q.Where(squirrel.Gt{"remaining_quantity": 0})
	}
	if filter.Date != nil {
		q = q.Where(squirrel.Eq{"purchase_date": *filter.Date})
	}
	switch filter.OrderBy {
	case repository.BatchOrderProduct:
		q = q.OrderBy("product_name ASC", "created_at DESC")
	case repository.BatchOrderRemaining:
		q = q.OrderBy("remaining_quantity DESC", "created_at DESC")
	default:
		q = q.OrderBy("purchase_date DESC", "created_at DESC")
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	var list []*entity.StockBatch
	if err := selectAll(ctx, r.q, "purchases.list", &list, q); err != nil {
		return nil, err
	}
	return list, nil
}

// CountReferences cuenta ventas y líneas de pedido que apuntan al lote.
func (r *StockBatchRepo) CountReferences(ctx context.Context, id string) (int, error) {
	const query = `
		SELECT (SELECT COUNT(*) FROM sales WHERE purchase_id = $1)
		     + (SELECT COUNT(*) FROM order_items WHERE purchase_id = $1)`
	var n int
	if err := r.q.QueryRow(ctx, query, id).Scan(&n); err != nil {
		return 0, storeErr("purchases.count_references", err)
	}
	return n, nil
}
