// Package memory implementa los puertos de persistencia en memoria. Sirve para pruebas y para
// levantar la API sin PostgreSQL (DB_DRIVER=memory). Las transacciones se serializan con un
// mutex y se revierten restaurando una copia del estado.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

type state struct {
	batches  map[string]entity.StockBatch
	sales    map[string]entity.Sale
	expenses map[string]entity.SaleExpense
	orders   map[string]entity.Order
	lines    map[string][]entity.OrderLine // por order_id
	daily    map[string]entity.DailyExpense
}

func newState() *state {
	return &state{
		batches:  make(map[string]entity.StockBatch),
		sales:    make(map[string]entity.Sale),
		expenses: make(map[string]entity.SaleExpense),
		orders:   make(map[string]entity.Order),
		lines:    make(map[string][]entity.OrderLine),
		daily:    make(map[string]entity.DailyExpense),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.batches {
		c.batches[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.expenses {
		c.expenses[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.lines {
		c.lines[k] = append([]entity.OrderLine(nil), v...)
	}
	for k, v := range s.daily {
		c.daily[k] = v
	}
	return c
}

// Store almacén en memoria. El valor cero no es usable; usar NewStore.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// access ejecuta fn sobre el estado. Dentro de una transacción el mutex ya está tomado.
func (s *Store) access(ctx context.Context, inTx bool, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.state)
}

// Batches repositorio de lotes fuera de transacción.
func (s *Store) Batches() *StockBatchRepo { return &StockBatchRepo{s: s} }

// Sales repositorio de ventas antiguas fuera de transacción.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }

// SaleExpenses repositorio de gastos de venta fuera de transacción.
func (s *Store) SaleExpenses() *SaleExpenseRepo { return &SaleExpenseRepo{s: s} }

// Orders repositorio de pedidos fuera de transacción.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// DailyExpenses repositorio de gastos diarios.
func (s *Store) DailyExpenses() *DailyExpenseRepo { return &DailyExpenseRepo{s: s} }

// Analytics repositorio de consultas agregadas.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }
