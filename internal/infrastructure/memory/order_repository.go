package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos multi-línea en memoria.
type OrderRepo struct {
	s    *Store
	inTx bool
}

// Create inserta la cabecera (las líneas van por CreateLines).
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		o := *order
		o.Lines = nil
		st.orders[o.ID] = o
		return nil
	})
}

// CreateLines agrega líneas al pedido.
func (r *OrderRepo) CreateLines(ctx context.Context, orderID string, lines []entity.OrderLine) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		if _, ok := st.orders[orderID]; !ok {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
		}
		for _, l := range lines {
			if _, ok := st.batches[l.PurchaseID]; !ok {
				return fmt.Errorf("%w: lote %s", domain.ErrNotFound, l.PurchaseID)
			}
			l.OrderID = orderID
			l.ProductName, l.Unit = "", ""
			st.lines[orderID] = append(st.lines[orderID], l)
		}
		return nil
	})
}

// GetByID devuelve el pedido con sus líneas, o (nil, nil).
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.s.access(ctx, r.inTx, func(st *state) error {
		if o, ok := st.orders[id]; ok {
			out = hydrateOrder(st, o)
		}
		return nil
	})
	return out, err
}

// GetForUpdate igual que GetByID: el almacén ya serializa las transacciones completas.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

// Update reescribe la cabecera.
func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		if _, ok := st.orders[order.ID]; !ok {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, order.ID)
		}
		o := *order
		o.Lines = nil
		st.orders[o.ID] = o
		return nil
	})
}

// DeleteLines elimina las líneas del pedido.
func (r *OrderRepo) DeleteLines(ctx context.Context, orderID string) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		delete(st.lines, orderID)
		return nil
	})
}

// Delete elimina la cabecera.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	return r.s.access(ctx, r.inTx, func(st *state) error {
		if _, ok := st.orders[id]; !ok {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
		}
		delete(st.orders, id)
		delete(st.lines, id)
		return nil
	})
}

// List mismo orden que SaleRepo.List.
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.s.access(ctx, r.inTx, func(st *state) error {
		for _, o := range st.orders {
			if filter.Date != nil && !o.SaleDate.Equal(*filter.Date) {
				continue
			}
			out = append(out, hydrateOrder(st, o))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].SaleDate.After(out[j].SaleDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func hydrateOrder(st *state, o entity.Order) *entity.Order {
	lines := st.lines[o.ID]
	o.Lines = make([]entity.OrderLine, 0, len(lines))
	for _, l := range lines {
		if b, ok := st.batches[l.PurchaseID]; ok {
			l.ProductName, l.Unit = b.ProductName, b.Unit
		}
		o.Lines = append(o.Lines, l)
	}
	return &o
}
