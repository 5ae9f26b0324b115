package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Estado derivado: total 100.000 con pagos 0 / 50.000 / 100.000 / 120.000
// ──────────────────────────────────────────────────────────────────────────────

func TestDeriveStatus_Tramos(t *testing.T) {
	cases := []struct {
		name string
		paid int64
		want string
	}{
		{"sin pago", 0, ledger.StatusUnpaid},
		{"pago parcial", 50_000, ledger.StatusPartial},
		{"pago exacto", 100_000, ledger.StatusPaid},
		{"sobrepago", 120_000, ledger.StatusPaid},
		{"pago negativo", -1, ledger.StatusUnpaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ledger.DeriveStatus(tc.paid, 100_000))
		})
	}
}

func TestComputePayment_IncluyeEnvioYGastos(t *testing.T) {
	p := ledger.ComputePayment(ledger.PaymentInput{
		BaseRevenue: 450_000,
		ShippingFee: 30_000,
		Expenses:    -10_000,
		AmountPaid:  200_000,
	})

	assert.Equal(t, int64(470_000), p.TotalAmount)
	assert.Equal(t, int64(270_000), p.AmountRemaining)
	assert.Equal(t, ledger.StatusPartial, p.Status)
}

func TestComputePayment_SobrepagoDejaSaldoNegativo(t *testing.T) {
	p := ledger.ComputePayment(ledger.PaymentInput{BaseRevenue: 100_000, AmountPaid: 150_000})

	assert.Equal(t, int64(-50_000), p.AmountRemaining, "el sobrepago se refleja como saldo negativo")
	assert.Equal(t, ledger.StatusPaid, p.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambio rápido de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestTogglePayment_ParcialAPagadoCompletaElMonto(t *testing.T) {
	in := ledger.PaymentInput{BaseRevenue: 90_000, ShippingFee: 10_000, AmountPaid: 40_000}

	p, err := ledger.TogglePayment(in, ledger.StatusPaid)
	require.NoError(t, err)

	assert.Equal(t, int64(100_000), p.AmountPaid, "pagado = total")
	assert.Equal(t, int64(0), p.AmountRemaining)
	assert.Equal(t, ledger.StatusPaid, p.Status)
}

func TestTogglePayment_AImpagoBorraElPagoParcial(t *testing.T) {
	in := ledger.PaymentInput{BaseRevenue: 100_000, AmountPaid: 40_000}

	p, err := ledger.TogglePayment(in, ledger.StatusUnpaid)
	require.NoError(t, err)

	assert.Equal(t, int64(0), p.AmountPaid)
	assert.Equal(t, int64(100_000), p.AmountRemaining)
	assert.Equal(t, ledger.StatusUnpaid, p.Status)
}

func TestTogglePayment_ParcialNoEsDestinoValido(t *testing.T) {
	_, err := ledger.TogglePayment(ledger.PaymentInput{BaseRevenue: 1}, ledger.StatusPartial)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUnitPrice_RedondeaAlEntero(t *testing.T) {
	assert.Equal(t, int64(33_333), ledger.UnitPrice(100_000, decimal.NewFromInt(3)))
	assert.Equal(t, int64(66_667), ledger.UnitPrice(200_000, decimal.NewFromInt(3)))
	assert.Equal(t, int64(40_000), ledger.UnitPrice(100_000, decimal.RequireFromString("2.5")))
	assert.Equal(t, int64(0), ledger.UnitPrice(100_000, decimal.Zero))
}
