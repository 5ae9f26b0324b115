package memory

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*Store)(nil)

// Run ejecuta fn con repositorios atados a la transacción. Si fn falla el estado vuelve a la copia
// tomada al inicio: ninguna escritura parcial queda visible.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	repos := inventory.TxRepos{
		Batches:      &StockBatchRepo{s: s, inTx: true},
		Sales:        &SaleRepo{s: s, inTx: true},
		SaleExpenses: &SaleExpenseRepo{s: s, inTx: true},
		Orders:       &OrderRepo{s: s, inTx: true},
	}
	if err := fn(ctx, repos); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}
