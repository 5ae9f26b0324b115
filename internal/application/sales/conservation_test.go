package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// consumed suma lo que ventas antiguas y líneas de pedido vivas tienen tomado del lote.
func (f *fixture) consumed(t *testing.T, batchID string) decimal.Decimal {
	t.Helper()
	ctx := context.Background()
	total := decimal.Zero
	saleList, err := f.store.Sales().List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	for _, s := range saleList {
		if s.PurchaseID == batchID {
			total = total.Add(s.Quantity)
		}
	}
	orderList, err := f.store.Orders().List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	for _, o := range orderList {
		for _, l := range o.Lines {
			if l.PurchaseID == batchID {
				total = total.Add(l.Quantity)
			}
		}
	}
	return total
}

// assertConserved comprueba cantidad comprada = remanente + consumo vivo.
func (f *fixture) assertConserved(t *testing.T, batchID string, quantity int64, step string) {
	t.Helper()
	got := f.remaining(t, batchID).Add(f.consumed(t, batchID))
	assert.True(t, got.Equal(qty(quantity)), "%s: remanente + consumido = %s, se esperaba %d", step, got, quantity)
}

func TestConservacion_VentasYPedidosSobreElMismoLote(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	arroz := f.intake(t, "Arroz", 100, 1_000_000)
	frijol := f.intake(t, "Frijol", 40, 320_000)
	today := ledger.FormatDate(ledger.Today())

	s := f.sell(t, arroz, 10, 150_000)
	f.assertConserved(t, arroz, 100, "venta creada")

	o, err := f.orders.Create(ctx, dto.OrderRequest{Items: []dto.OrderLineRequest{
		line(arroz, 15, 225_000),
		line(frijol, 4, 40_000),
		line(arroz, 5, 75_000),
	}})
	require.NoError(t, err)
	f.assertConserved(t, arroz, 100, "pedido creado")
	f.assertConserved(t, frijol, 40, "pedido creado")
	assert.True(t, f.remaining(t, arroz).Equal(qty(70)))

	_, err = f.sales.UpdateComplete(ctx, s.ID, dto.UpdateSaleRequest{
		PurchaseID: arroz, Quantity: qty(12), TotalRevenue: 180_000, SaleDate: today,
	})
	require.NoError(t, err)
	f.assertConserved(t, arroz, 100, "venta editada")

	_, err = f.orders.Update(ctx, o.ID, dto.OrderRequest{Items: []dto.OrderLineRequest{
		line(arroz, 20, 300_000),
		line(frijol, 1, 10_000),
	}})
	require.NoError(t, err)
	f.assertConserved(t, arroz, 100, "pedido editado")
	f.assertConserved(t, frijol, 40, "pedido editado")

	// La venta pasa al otro lote: vuelve al arroz y sale del frijol.
	_, err = f.sales.UpdateComplete(ctx, s.ID, dto.UpdateSaleRequest{
		PurchaseID: frijol, Quantity: qty(6), TotalRevenue: 60_000, SaleDate: today,
	})
	require.NoError(t, err)
	f.assertConserved(t, arroz, 100, "venta movida de lote")
	f.assertConserved(t, frijol, 40, "venta movida de lote")

	// Una edición que no alcanza no rompe el balance.
	_, err = f.orders.Update(ctx, o.ID, dto.OrderRequest{Items: []dto.OrderLineRequest{line(frijol, 50, 500_000)}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	f.assertConserved(t, arroz, 100, "edición rechazada")
	f.assertConserved(t, frijol, 40, "edición rechazada")

	require.NoError(t, f.sales.Delete(ctx, s.ID))
	f.assertConserved(t, frijol, 40, "venta borrada")
	require.NoError(t, f.orders.Delete(ctx, o.ID))
	assert.True(t, f.remaining(t, arroz).Equal(qty(100)))
	assert.True(t, f.remaining(t, frijol).Equal(qty(40)))
}

func TestMontoPagadoNegativoEsInvalido(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	batch := f.intake(t, "Arroz", 100, 1_000_000)
	s := f.sell(t, batch, 10, 100_000)
	o, err := f.orders.Create(ctx, dto.OrderRequest{Items: []dto.OrderLineRequest{line(batch, 5, 50_000)}})
	require.NoError(t, err)
	today := ledger.FormatDate(ledger.Today())

	cases := []struct {
		name string
		run  func() error
	}{
		{"crear venta", func() error {
			_, err := f.sales.Create(ctx, dto.CreateSaleRequest{
				PurchaseID: batch, Quantity: qty(1), TotalPrice: 10_000, AmountPaid: -1, SaleDate: today,
			})
			return err
		}},
		{"detalles de venta", func() error {
			_, err := f.sales.UpdateDetails(ctx, s.ID, dto.UpdateSaleDetailsRequest{AmountPaid: -500})
			return err
		}},
		{"edición completa", func() error {
			_, err := f.sales.UpdateComplete(ctx, s.ID, dto.UpdateSaleRequest{
				PurchaseID: batch, Quantity: qty(10), TotalRevenue: 100_000, AmountPaid: -1, SaleDate: today,
			})
			return err
		}},
		{"crear pedido", func() error {
			_, err := f.orders.Create(ctx, dto.OrderRequest{AmountPaid: -1, Items: []dto.OrderLineRequest{line(batch, 1, 10_000)}})
			return err
		}},
		{"editar pedido", func() error {
			_, err := f.orders.Update(ctx, o.ID, dto.OrderRequest{AmountPaid: -1, Items: []dto.OrderLineRequest{line(batch, 5, 50_000)}})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.run(), domain.ErrInvalidInput)
		})
	}
	assert.True(t, f.remaining(t, batch).Equal(qty(85)), "ningún intento inválido toca el stock")
}
