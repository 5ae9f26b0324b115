package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// OrderRepository persistencia de pedidos multi-línea (orders + order_items).
// GetByID y List devuelven el pedido con sus líneas (y nombre/unidad del producto).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateLines(ctx context.Context, orderID string, lines []entity.OrderLine) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la cabecera del pedido hasta el fin de la tx y lo devuelve con sus líneas.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	DeleteLines(ctx context.Context, orderID string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
}
