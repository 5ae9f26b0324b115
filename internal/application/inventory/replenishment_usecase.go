package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// ReplenishmentUseCase arma la lista de reposición: productos cuyo remanente total
// quedó en nivel bajo o agotado, priorizados por lo que venden.
type ReplenishmentUseCase struct {
	batches       repository.StockBatchRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	batches repository.StockBatchRepository,
	analyticsRepo repository.AnalyticsRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		batches:       batches,
		analyticsRepo: analyticsRepo,
	}
}

// productStock acumulado de todos los lotes de un mismo nombre de producto.
type productStock struct {
	name      string
	unit      string
	remaining decimal.Decimal
	sold      decimal.Decimal
	last      *entity.StockBatch // lote más reciente: tamaño y costo de referencia
}

// GenerateReplenishmentList devuelve los productos con remanente <= umbral de stock bajo,
// la cantidad sugerida para volver al tamaño del último lote y su costo estimado.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	// 1. Stock agregado por producto
	batches, err := uc.batches.List(ctx, repository.BatchFilter{OrderBy: repository.BatchOrderProduct})
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*productStock)
	for _, b := range batches {
		p, ok := byName[b.ProductName]
		if !ok {
			p = &productStock{name: b.ProductName, unit: b.Unit}
			byName[b.ProductName] = p
		}
		p.remaining = p.remaining.Add(b.RemainingQuantity)
		p.sold = p.sold.Add(b.SoldQuantity())
		if p.last == nil || newerBatch(b, p.last) {
			p.last = b
		}
	}

	// 2. Ingreso histórico por producto (ambos modelos de venta)
	top, err := uc.analyticsRepo.GetTopProducts(ctx, 0)
	if err != nil {
		return nil, err
	}
	revenueByName := make(map[string]int64, len(top))
	for _, t := range top {
		revenueByName[t.ProductName] = t.Revenue
	}

	// 3. Sugerencias
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range byName {
		if p.remaining.GreaterThan(entity.LowStockThreshold) {
			continue
		}
		suggested := p.last.Quantity.Sub(p.remaining)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		unitCost := decimal.Zero
		if p.last.Quantity.IsPositive() {
			unitCost = decimal.NewFromInt(p.last.TotalCost).Div(p.last.Quantity)
		}
		level := entity.StockLow
		if !p.remaining.IsPositive() {
			level = entity.StockOut
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductName:        p.name,
			Unit:               p.unit,
			StockLevel:         level,
			RemainingQuantity:  p.remaining,
			SoldQuantity:       p.sold,
			LastBatchQuantity:  p.last.Quantity,
			SuggestedOrderQty:  suggested,
			UnitCost:           unitCost.Round(0).IntPart(),
			EstimatedOrderCost: unitCost.Mul(suggested).Round(0).IntPart(),
			Revenue:            revenueByName[p.name],
			LastSupplier:       p.last.SupplierName,
		})
	}

	// 4. Orden: mayor ingreso, luego más vendido, luego menor remanente; nombre como desempate
	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		if !a.SoldQuantity.Equal(b.SoldQuantity) {
			return a.SoldQuantity.GreaterThan(b.SoldQuantity)
		}
		if !a.RemainingQuantity.Equal(b.RemainingQuantity) {
			return a.RemainingQuantity.LessThan(b.RemainingQuantity)
		}
		return a.ProductName < b.ProductName
	})

	// 5. Prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func newerBatch(a, b *entity.StockBatch) bool {
	if !a.PurchaseDate.Equal(b.PurchaseDate) {
		return a.PurchaseDate.After(b.PurchaseDate)
	}
	return a.CreatedAt.After(b.CreatedAt)
}
