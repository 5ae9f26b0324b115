package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order pedido multi-línea (tablas orders + order_items).
// El ingreso total no se persiste: es la suma de las líneas.
type Order struct {
	ID              string    `db:"id"`
	CustomerName    string    `db:"customer_name"`
	DeliveryMethod  string    `db:"delivery_method"`
	ShippingFee     int64     `db:"shipping_fee"`
	AmountPaid      int64     `db:"amount_paid"`
	AmountRemaining int64     `db:"amount_remaining"`
	SaleDate        time.Time `db:"sale_date"`
	PaymentStatus   string    `db:"payment_status"`
	Notes           string    `db:"notes"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`

	Lines []OrderLine `db:"-"`
}

// TotalRevenue suma de total_price de las líneas.
func (o *Order) TotalRevenue() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.TotalPrice
	}
	return total
}

// QuantitiesByBatch agrupa las cantidades del pedido por lote.
func (o *Order) QuantitiesByBatch() map[string]decimal.Decimal {
	return LineQuantities(o.Lines)
}

// OrderLine línea de un pedido; consume stock de un lote.
// ProductName y Unit se llenan solo en lecturas.
type OrderLine struct {
	ID         string          `db:"id"`
	OrderID    string          `db:"order_id"`
	PurchaseID string          `db:"purchase_id"`
	Quantity   decimal.Decimal `db:"quantity"`
	UnitPrice  int64           `db:"unit_price"`
	TotalPrice int64           `db:"total_price"`
	Notes      string          `db:"notes"`

	ProductName string `db:"product_name"`
	Unit        string `db:"unit"`
}

// LineQuantities suma cantidades por lote (varias líneas pueden apuntar al mismo lote).
func LineQuantities(lines []OrderLine) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		out[l.PurchaseID] = out[l.PurchaseID].Add(l.Quantity)
	}
	return out
}
