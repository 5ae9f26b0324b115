package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain"
)

// StockChange efecto neto de una operación sobre un lote.
// Delta = After - Before (positivo devuelve a stock, negativo consume).
type StockChange struct {
	BatchID string
	Before  decimal.Decimal
	After   decimal.Decimal
}

// Delta variación neta aplicada al lote.
func (c StockChange) Delta() decimal.Decimal {
	return c.After.Sub(c.Before)
}

// PlanStockChanges concilia las cantidades ya comprometidas con las pedidas, por lote:
//
//	after = remaining + committed - requested
//
// Valida todos los lotes antes de devolver nada: si alguno queda negativo retorna
// ErrInsufficientStock y ningún cambio. Crear es committed = nil; eliminar es requested = nil.
// Los cambios salen ordenados por BatchID (mismo orden en que se bloquean las filas).
func PlanStockChanges(committed, requested, remaining map[string]decimal.Decimal) ([]StockChange, error) {
	ids := BatchIDs(committed, requested)
	changes := make([]StockChange, 0, len(ids))
	for _, id := range ids {
		current, ok := remaining[id]
		if !ok {
			return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
		}
		oldQty, newQty := committed[id], requested[id]
		if newQty.IsNegative() || oldQty.IsNegative() {
			return nil, fmt.Errorf("%w: cantidad negativa para el lote %s", domain.ErrInvalidInput, id)
		}
		after := current.Add(oldQty).Sub(newQty)
		if after.IsNegative() {
			return nil, fmt.Errorf("%w: lote %s, disponible %s, solicitado %s",
				domain.ErrInsufficientStock, id, current.Add(oldQty).String(), newQty.String())
		}
		if after.Equal(current) {
			continue
		}
		changes = append(changes, StockChange{BatchID: id, Before: current, After: after})
	}
	return changes, nil
}

// BatchIDs unión ordenada de los lotes referenciados por los mapas dados.
func BatchIDs(sets ...map[string]decimal.Decimal) []string {
	seen := make(map[string]struct{})
	for _, m := range sets {
		for id := range m {
			seen[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
