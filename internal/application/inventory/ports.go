package inventory

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Batches      repository.StockBatchRepository
	Sales        repository.SaleRepository
	SaleExpenses repository.SaleExpenseRepository
	Orders       repository.OrderRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ninguna escritura queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
