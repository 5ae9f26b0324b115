package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
)

func line(batchID string, quantity, price int64) dto.OrderLineRequest {
	return dto.OrderLineRequest{PurchaseID: batchID, Quantity: qty(quantity), Price: price}
}

func TestPedido_MultiLineaConEnvioNegativo(t *testing.T) {
	f := newFixture()
	a := f.intake(t, "Arroz", 100, 1_000_000)
	b := f.intake(t, "Frijol", 50, 400_000)

	o, err := f.orders.Create(context.Background(), dto.OrderRequest{
		CustomerName: "Tienda La 14",
		ShippingFee:  -20_000,
		Items:        []dto.OrderLineRequest{line(a, 5, 100_000), line(b, 3, 60_000)},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(160_000), o.TotalRevenue)
	assert.Equal(t, int64(140_000), o.AmountRemaining)
	assert.Equal(t, ledger.StatusUnpaid, o.PaymentStatus)
	assert.Equal(t, "pickup", o.DeliveryMethod)
	require.Len(t, o.Items, 2)
	for _, it := range o.Items {
		if it.PurchaseID == a {
			assert.Equal(t, int64(20_000), it.UnitPrice)
			assert.Equal(t, "Arroz", it.ProductName)
		}
	}
	assert.True(t, f.remaining(t, a).Equal(qty(95)))
	assert.True(t, f.remaining(t, b).Equal(qty(47)))
}

func TestPedido_UnaLineaSinStockNoDescuentaNada(t *testing.T) {
	f := newFixture()
	a := f.intake(t, "Arroz", 100, 1_000_000)
	b := f.intake(t, "Frijol", 2, 20_000)

	_, err := f.orders.Create(context.Background(), dto.OrderRequest{
		Items: []dto.OrderLineRequest{line(a, 5, 100_000), line(b, 3, 60_000)},
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.remaining(t, a).Equal(qty(100)))
	assert.True(t, f.remaining(t, b).Equal(qty(2)))
}

func TestPedido_LineasDelMismoLoteSeSuman(t *testing.T) {
	f := newFixture()
	a := f.intake(t, "Arroz", 10, 100_000)

	_, err := f.orders.Create(context.Background(), dto.OrderRequest{
		Items: []dto.OrderLineRequest{line(a, 6, 60_000), line(a, 6, 60_000)},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.remaining(t, a).Equal(qty(10)))

	_, err = f.orders.Create(context.Background(), dto.OrderRequest{
		Items: []dto.OrderLineRequest{line(a, 4, 40_000), line(a, 6, 60_000)},
	})
	require.NoError(t, err)
	assert.True(t, f.remaining(t, a).IsZero())
}

func TestPedido_EdicionAplicaEfectoNeto(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.intake(t, "Arroz", 10, 100_000)
	b := f.intake(t, "Frijol", 10, 100_000)
	o, err := f.orders.Create(ctx, dto.OrderRequest{Items: []dto.OrderLineRequest{line(a, 5, 50_000)}})
	require.NoError(t, err)

	updated, err := f.orders.Update(ctx, o.ID, dto.OrderRequest{
		AmountPaid: 10_000,
		Items:      []dto.OrderLineRequest{line(a, 2, 20_000), line(b, 1, 15_000)},
	})
	require.NoError(t, err)

	assert.True(t, f.remaining(t, a).Equal(qty(8)))
	assert.True(t, f.remaining(t, b).Equal(qty(9)))
	assert.Equal(t, int64(35_000), updated.TotalRevenue)
	assert.Equal(t, int64(25_000), updated.AmountRemaining)
	assert.Equal(t, ledger.StatusPartial, updated.PaymentStatus)
	assert.Len(t, updated.Items, 2)
	assert.Equal(t, o.SaleDate, updated.SaleDate, "sin fecha en la edición se conserva la original")
}

func TestPedido_EdicionFallidaConservaTodo(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.intake(t, "Arroz", 10, 100_000)
	o, err := f.orders.Create(ctx, dto.OrderRequest{Items: []dto.OrderLineRequest{line(a, 5, 50_000)}})
	require.NoError(t, err)

	// 5 disponibles + 5 comprometidos = 10 como máximo.
	_, err = f.orders.Update(ctx, o.ID, dto.OrderRequest{Items: []dto.OrderLineRequest{line(a, 11, 110_000)}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.remaining(t, a).Equal(qty(5)))
	got, err := f.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Quantity.Equal(qty(5)))
}

func TestPedido_BorradoDevuelveCadaLinea(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.intake(t, "Arroz", 100, 1_000_000)
	b := f.intake(t, "Frijol", 50, 400_000)
	o, err := f.orders.Create(ctx, dto.OrderRequest{
		Items: []dto.OrderLineRequest{line(a, 5, 100_000), line(b, 3, 60_000)},
	})
	require.NoError(t, err)

	require.NoError(t, f.orders.Delete(ctx, o.ID))

	assert.True(t, f.remaining(t, a).Equal(qty(100)))
	assert.True(t, f.remaining(t, b).Equal(qty(50)))
	_, err = f.orders.GetByID(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.orders.Delete(ctx, o.ID), domain.ErrNotFound)
}

func TestPedido_TogglePagoIncluyeEnvio(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.intake(t, "Arroz", 100, 1_000_000)
	o, err := f.orders.Create(ctx, dto.OrderRequest{
		ShippingFee: 15_000,
		AmountPaid:  50_000,
		Items:       []dto.OrderLineRequest{line(a, 5, 100_000)},
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusPartial, o.PaymentStatus)

	paid, err := f.orders.TogglePayment(ctx, o.ID, ledger.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, int64(115_000), paid.AmountPaid)
	assert.Equal(t, int64(0), paid.AmountRemaining)

	_, err = f.orders.TogglePayment(ctx, o.ID, ledger.StatusPartial)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPedido_SinLineasEsInvalido(t *testing.T) {
	_, err := newFixture().orders.Create(context.Background(), dto.OrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
