package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// OrderFilter filtros de listado común a ventas y pedidos. Campos cero = sin filtro.
type OrderFilter struct {
	Date  *time.Time
	Limit int
}

// SaleRepository persistencia de ventas antiguas (tabla sales).
// GetByID y List devuelven la venta con ProductName/Unit y sus gastos cargados.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la fila de la venta hasta el fin de la tx y la devuelve ya cargada.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter OrderFilter) ([]*entity.Sale, error)
}

// SaleExpenseRepository gastos ad-hoc de ventas antiguas (tabla expenses).
type SaleExpenseRepository interface {
	Create(ctx context.Context, expense *entity.SaleExpense) error
	GetByID(ctx context.Context, id string) (*entity.SaleExpense, error)
	Delete(ctx context.Context, id string) error
	DeleteBySale(ctx context.Context, saleID string) error
	ListBySale(ctx context.Context, saleID string) ([]entity.SaleExpense, error)
}
