package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// Orden de listado de lotes.
const (
	BatchOrderNewest    = "newest"    // purchase_date DESC, created_at DESC (historial)
	BatchOrderProduct   = "product"   // product_name ASC (inventario)
	BatchOrderRemaining = "remaining" // remaining_quantity DESC (dashboard)
)

// BatchFilter filtros de listado de lotes. Campos cero = sin filtro.
type BatchFilter struct {
	InStockOnly bool
	Date        *time.Time
	OrderBy     string
	Limit       int
}

// StockBatchRepository define el puerto de persistencia del libro de stock (tabla purchases).
// Las lecturas de un ID inexistente devuelven (nil, nil).
type StockBatchRepository interface {
	Create(ctx context.Context, batch *entity.StockBatch) error
	GetByID(ctx context.Context, id string) (*entity.StockBatch, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockBatch, error)
	// Update reescribe los datos del lote si Version coincide; si no, ErrConcurrentUpdate.
	Update(ctx context.Context, batch *entity.StockBatch) error
	// UpdateRemaining fija remaining_quantity si la versión coincide e incrementa la versión.
	UpdateRemaining(ctx context.Context, id string, remaining decimal.Decimal, version int64) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter BatchFilter) ([]*entity.StockBatch, error)
	// CountReferences cuenta ventas y líneas de pedido que apuntan al lote.
	CountReferences(ctx context.Context, id string) (int, error)
}
