package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatch representa un ingreso de mercancía (tabla purchases).
// RemainingQuantity es el libro de stock: lo descuentan las ventas y lo devuelven sus reversos.
// Version se incrementa en cada escritura y se compara en el UPDATE (concurrencia optimista).
type StockBatch struct {
	ID                string          `db:"id"`
	ProductName       string          `db:"product_name"`
	Unit              string          `db:"unit"`
	Quantity          decimal.Decimal `db:"quantity"`
	RemainingQuantity decimal.Decimal `db:"remaining_quantity"`
	TotalCost         int64           `db:"total_cost"`
	PurchaseDate      time.Time       `db:"purchase_date"`
	SupplierName      string          `db:"supplier_name"`
	Notes             string          `db:"notes"`
	Version           int64           `db:"version"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// SoldQuantity cantidad ya consumida por ventas vivas.
func (b *StockBatch) SoldQuantity() decimal.Decimal {
	return b.Quantity.Sub(b.RemainingQuantity)
}

// InStock indica si al lote le queda algo por vender.
func (b *StockBatch) InStock() bool {
	return b.RemainingQuantity.GreaterThan(decimal.Zero)
}

// LowStockThreshold remanente a partir del cual el lote se considera con poco stock.
var LowStockThreshold = decimal.NewFromInt(5)

// Niveles de stock del inventario.
const (
	StockOut  = "out"
	StockLow  = "low"
	StockGood = "good"
)

// StockLevel clasifica el remanente: out (0), low (<= 5) o good.
func (b *StockBatch) StockLevel() string {
	switch {
	case !b.InStock():
		return StockOut
	case b.RemainingQuantity.LessThanOrEqual(LowStockThreshold):
		return StockLow
	default:
		return StockGood
	}
}
