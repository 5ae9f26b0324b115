package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de entrega.
const (
	DeliveryPickup   = "pickup"
	DeliveryDelivery = "delivery"
)

// Tipos de gasto asociado a una venta.
const (
	SaleExpenseShipping  = "shipping_cost"
	SaleExpensePackaging = "packaging"
	SaleExpenseOther     = "other"
)

// Sale venta de un único lote (tabla sales, modelo de pedido antiguo).
// ProductName, Unit y Expenses se llenan solo en lecturas (join), no se persisten aquí.
type Sale struct {
	ID              string          `db:"id"`
	PurchaseID      string          `db:"purchase_id"`
	Quantity        decimal.Decimal `db:"quantity"`
	UnitPrice       int64           `db:"unit_price"`
	TotalRevenue    int64           `db:"total_revenue"`
	ShippingFee     int64           `db:"shipping_fee"` // positivo: cobrado al cliente; negativo: costo asumido
	CustomerName    string          `db:"customer_name"`
	DeliveryMethod  string          `db:"delivery_method"`
	AmountPaid      int64           `db:"amount_paid"`
	AmountRemaining int64           `db:"amount_remaining"`
	SaleDate        time.Time       `db:"sale_date"`
	PaymentStatus   string          `db:"payment_status"`
	Notes           string          `db:"notes"`
	NotesInternal   string          `db:"notes_internal"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`

	ProductName string        `db:"product_name"`
	Unit        string        `db:"unit"`
	Expenses    []SaleExpense `db:"-"`
}

// ExpensesTotal suma con signo de los gastos asociados.
func (s *Sale) ExpensesTotal() int64 {
	var total int64
	for _, e := range s.Expenses {
		total += e.Amount
	}
	return total
}

// SaleExpense gasto ad-hoc de una venta antigua (tabla expenses). Amount con signo.
type SaleExpense struct {
	ID          string    `db:"id"`
	SaleID      string    `db:"sale_id"`
	ExpenseType string    `db:"expense_type"`
	Description string    `db:"description"`
	Amount      int64     `db:"amount"`
	CreatedAt   time.Time `db:"created_at"`
}

// IsValidSaleExpenseType valida el tipo de gasto de venta.
func IsValidSaleExpenseType(t string) bool {
	switch t {
	case SaleExpenseShipping, SaleExpensePackaging, SaleExpenseOther:
		return true
	}
	return false
}

// IsValidDeliveryMethod valida el método de entrega.
func IsValidDeliveryMethod(m string) bool {
	return m == DeliveryPickup || m == DeliveryDelivery
}
