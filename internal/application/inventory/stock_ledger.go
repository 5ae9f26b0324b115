package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// StockLedger libro de stock por lote. Se construye con el repositorio de la transacción en curso:
// cada lote se bloquea (SELECT FOR UPDATE) antes de leer su remanente y se escribe con chequeo de versión.
type StockLedger struct {
	batches repository.StockBatchRepository
}

// NewStockLedger construye el libro sobre un repositorio atado a la tx.
func NewStockLedger(batches repository.StockBatchRepository) *StockLedger {
	return &StockLedger{batches: batches}
}

// Lock bloquea los lotes en orden ascendente de id (mismo orden en todas las operaciones, sin deadlocks).
func (l *StockLedger) Lock(ctx context.Context, ids []string) (map[string]*entity.StockBatch, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	locked := make(map[string]*entity.StockBatch, len(sorted))
	for _, id := range sorted {
		if _, ok := locked[id]; ok {
			continue
		}
		b, err := l.batches.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
		}
		locked[id] = b
	}
	return locked, nil
}

// Decrement descuenta qty del lote. Falla con ErrInsufficientStock sin escribir si qty > remanente.
func (l *StockLedger) Decrement(ctx context.Context, batchID string, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return fmt.Errorf("%w: la cantidad debe ser mayor a 0", domain.ErrInvalidInput)
	}
	_, err := l.Apply(ctx, nil, map[string]decimal.Decimal{batchID: qty})
	return err
}

// Increment devuelve qty al lote (reverso de una venta). No valida contra la cantidad original.
func (l *StockLedger) Increment(ctx context.Context, batchID string, qty decimal.Decimal) error {
	_, err := l.Apply(ctx, map[string]decimal.Decimal{batchID: qty}, nil)
	return err
}

// Apply concilia lo comprometido con lo pedido para todos los lotes involucrados.
// Bloquea, planifica y valida todo antes de la primera escritura.
func (l *StockLedger) Apply(ctx context.Context, committed, requested map[string]decimal.Decimal) ([]ledger.StockChange, error) {
	ids := ledger.BatchIDs(committed, requested)
	locked, err := l.Lock(ctx, ids)
	if err != nil {
		return nil, err
	}
	remaining := make(map[string]decimal.Decimal, len(locked))
	for id, b := range locked {
		remaining[id] = b.RemainingQuantity
	}
	changes, err := ledger.PlanStockChanges(committed, requested, remaining)
	if err != nil {
		return nil, err
	}
	for _, c := range changes {
		if err := l.batches.UpdateRemaining(ctx, c.BatchID, c.After, locked[c.BatchID].Version); err != nil {
			return nil, err
		}
	}
	return changes, nil
}
