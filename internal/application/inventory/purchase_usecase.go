package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

const defaultHistoryLimit = 50

// PurchaseUseCase ingresos de mercancía (lotes de stock) e inventario.
type PurchaseUseCase struct {
	txRunner TxRunner
	batches  repository.StockBatchRepository
	cache    ports.ReportCache
}

// NewPurchaseUseCase construye el caso de uso. cache puede ser nil.
func NewPurchaseUseCase(txRunner TxRunner, batches repository.StockBatchRepository, cache ports.ReportCache) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, batches: batches, cache: cache}
}

// Create registra un lote nuevo; el remanente arranca igual a la cantidad comprada.
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	name, unit, err := validatePurchase(in.ProductName, in.Unit, in.Quantity, in.TotalCost)
	if err != nil {
		return nil, err
	}
	purchaseDate, err := ledger.ParseDate(in.PurchaseDate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	batch := &entity.StockBatch{
		ID:                uuid.New().String(),
		ProductName:       name,
		Unit:              unit,
		Quantity:          in.Quantity,
		RemainingQuantity: in.Quantity,
		TotalCost:         in.TotalCost,
		PurchaseDate:      purchaseDate,
		SupplierName:      strings.TrimSpace(in.SupplierName),
		Notes:             strings.TrimSpace(in.Notes),
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.batches.Create(ctx, batch); err != nil {
		return nil, err
	}
	InvalidateReports(ctx, uc.cache)
	return dto.NewPurchaseResponse(batch), nil
}

// Update reescribe los datos del lote conservando lo ya vendido:
// remanente nuevo = cantidad nueva - vendido. Si queda negativo la edición se rechaza.
func (uc *PurchaseUseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	name, unit, err := validatePurchase(in.ProductName, in.Unit, in.Quantity, in.TotalCost)
	if err != nil {
		return nil, err
	}
	var out *entity.StockBatch
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		batch, err := repos.Batches.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if batch == nil {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
		}
		sold := batch.SoldQuantity()
		remaining := in.Quantity.Sub(sold)
		if remaining.IsNegative() {
			return fmt.Errorf("%w: la cantidad (%s) es menor a lo ya vendido (%s)",
				domain.ErrInvalidInput, in.Quantity.String(), sold.String())
		}
		batch.ProductName = name
		batch.Unit = unit
		batch.Quantity = in.Quantity
		batch.RemainingQuantity = remaining
		batch.TotalCost = in.TotalCost
		batch.SupplierName = strings.TrimSpace(in.SupplierName)
		batch.Notes = strings.TrimSpace(in.Notes)
		batch.UpdatedAt = time.Now()
		if err := repos.Batches.Update(ctx, batch); err != nil {
			return err
		}
		out = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	InvalidateReports(ctx, uc.cache)
	return dto.NewPurchaseResponse(out), nil
}

// Delete elimina un lote sin ventas. Si algo se vendió o alguna venta lo referencia: ErrConflict.
func (uc *PurchaseUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		batch, err := repos.Batches.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if batch == nil {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
		}
		if batch.SoldQuantity().IsPositive() {
			return fmt.Errorf("%w: el lote ya tiene ventas (%s %s vendidos)",
				domain.ErrConflict, batch.SoldQuantity().String(), batch.Unit)
		}
		refs, err := repos.Batches.CountReferences(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: el lote está referenciado por %d ventas", domain.ErrConflict, refs)
		}
		return repos.Batches.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	InvalidateReports(ctx, uc.cache)
	return nil
}

// GetByID obtiene un lote.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	batch, err := uc.batches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	return dto.NewPurchaseResponse(batch), nil
}

// List historial de ingresos, más recientes primero.
func (uc *PurchaseUseCase) List(ctx context.Context, limit int) ([]dto.PurchaseResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	list, err := uc.batches.List(ctx, repository.BatchFilter{OrderBy: repository.BatchOrderNewest, Limit: limit})
	if err != nil {
		return nil, err
	}
	return dto.NewPurchaseList(list), nil
}

// ListInventory todos los lotes por nombre de producto; inStockOnly deja solo los que tienen remanente.
func (uc *PurchaseUseCase) ListInventory(ctx context.Context, inStockOnly bool) ([]dto.PurchaseResponse, error) {
	list, err := uc.batches.List(ctx, repository.BatchFilter{InStockOnly: inStockOnly, OrderBy: repository.BatchOrderProduct})
	if err != nil {
		return nil, err
	}
	return dto.NewPurchaseList(list), nil
}

func validatePurchase(productName, unit string, quantity decimal.Decimal, totalCost int64) (string, string, error) {
	name := strings.TrimSpace(productName)
	u := strings.TrimSpace(unit)
	if name == "" || u == "" {
		return "", "", fmt.Errorf("%w: producto y unidad son obligatorios", domain.ErrInvalidInput)
	}
	if !quantity.IsPositive() {
		return "", "", fmt.Errorf("%w: la cantidad debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if totalCost < 0 {
		return "", "", fmt.Errorf("%w: el costo total no puede ser negativo", domain.ErrInvalidInput)
	}
	return name, u, nil
}
