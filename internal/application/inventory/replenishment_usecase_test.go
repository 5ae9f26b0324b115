package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/sales"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
)

func TestReplenishment_PriorizaPorIngreso(t *testing.T) {
	ctx := context.Background()
	store, uc := newPurchaseUC(nil)
	saleUC := sales.NewSaleUseCase(store, store.Sales(), nil)
	orderUC := sales.NewOrderUseCase(store, store.Orders(), nil)

	arroz, err := uc.Create(ctx, dto.CreatePurchaseRequest{
		ProductName: "Arroz", Unit: "kg", Quantity: qty(100), TotalCost: 1_000_000, SupplierName: "Molino Roa",
	})
	require.NoError(t, err)
	frijol := createBatch(t, uc, "Frijol", 10)
	createBatch(t, uc, "Café", 20)

	_, err = saleUC.Create(ctx, dto.CreateSaleRequest{
		PurchaseID: arroz.ID, Quantity: qty(97), TotalPrice: 970_000, SaleDate: ledger.FormatDate(ledger.Today()),
	})
	require.NoError(t, err)
	_, err = orderUC.Create(ctx, dto.OrderRequest{
		Items: []dto.OrderLineRequest{{PurchaseID: frijol.ID, Quantity: qty(10), Price: 50_000}},
	})
	require.NoError(t, err)

	list, err := inventory.NewReplenishmentUseCase(store.Batches(), store.Analytics()).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2, "Café sigue con stock suficiente")

	first := list[0]
	assert.Equal(t, 1, first.Priority)
	assert.Equal(t, "Arroz", first.ProductName)
	assert.Equal(t, entity.StockLow, first.StockLevel)
	assert.True(t, first.RemainingQuantity.Equal(qty(3)))
	assert.True(t, first.SuggestedOrderQty.Equal(qty(97)))
	assert.Equal(t, int64(10_000), first.UnitCost)
	assert.Equal(t, int64(970_000), first.EstimatedOrderCost)
	assert.Equal(t, int64(970_000), first.Revenue)
	assert.Equal(t, "Molino Roa", first.LastSupplier)

	second := list[1]
	assert.Equal(t, 2, second.Priority)
	assert.Equal(t, "Frijol", second.ProductName)
	assert.Equal(t, entity.StockOut, second.StockLevel)
	assert.True(t, second.SuggestedOrderQty.Equal(qty(10)))
}

func TestReplenishment_SinProductosBajos(t *testing.T) {
	store, uc := newPurchaseUC(nil)
	createBatch(t, uc, "Arroz", 50)

	list, err := inventory.NewReplenishmentUseCase(store.Batches(), store.Analytics()).GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
