// Package ledger contiene la lógica pura del libro de ventas: cálculo de pagos,
// plan de movimientos de stock y la proyección común de pedidos antiguos y nuevos.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain"
)

// Estados de pago. Siempre se derivan de los montos; ninguna ruta los fija directamente.
const (
	StatusPaid    = "paid"
	StatusUnpaid  = "unpaid"
	StatusPartial = "partial"
)

// PaymentInput montos de entrada del calculador.
// Expenses solo aplica a ventas antiguas (los pedidos nuevos lo dejan en 0).
type PaymentInput struct {
	BaseRevenue int64
	ShippingFee int64
	Expenses    int64
	AmountPaid  int64
}

// Payment campos derivados que se persisten junto al pedido.
type Payment struct {
	TotalAmount     int64
	AmountPaid      int64
	AmountRemaining int64
	Status          string
}

// ComputePayment aplica la fórmula:
//
//	TotalAmount     = BaseRevenue + ShippingFee + Expenses
//	AmountRemaining = TotalAmount - AmountPaid   (negativo = sobrepago)
func ComputePayment(in PaymentInput) Payment {
	total := in.BaseRevenue + in.ShippingFee + in.Expenses
	return Payment{
		TotalAmount:     total,
		AmountPaid:      in.AmountPaid,
		AmountRemaining: total - in.AmountPaid,
		Status:          DeriveStatus(in.AmountPaid, total),
	}
}

// DeriveStatus paid si pagado >= total; partial si 0 < pagado < total; unpaid si pagado <= 0.
func DeriveStatus(amountPaid, totalAmount int64) string {
	switch {
	case amountPaid >= totalAmount:
		return StatusPaid
	case amountPaid > 0:
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// TogglePayment cambio rápido de estado. "paid" fija AmountPaid = total y "unpaid" lo deja en 0,
// sobrescribiendo cualquier pago parcial previo. "partial" no es un destino válido.
func TogglePayment(in PaymentInput, target string) (Payment, error) {
	total := in.BaseRevenue + in.ShippingFee + in.Expenses
	switch target {
	case StatusPaid:
		in.AmountPaid = total
	case StatusUnpaid:
		in.AmountPaid = 0
	default:
		return Payment{}, fmt.Errorf("%w: estado de pago %q no admitido (use paid o unpaid)", domain.ErrInvalidInput, target)
	}
	return ComputePayment(in), nil
}

// UnitPrice precio unitario derivado: round(total / cantidad). Cantidad cero devuelve 0.
func UnitPrice(total int64, quantity decimal.Decimal) int64 {
	if quantity.IsZero() {
		return 0
	}
	return decimal.NewFromInt(total).Div(quantity).Round(0).IntPart()
}
