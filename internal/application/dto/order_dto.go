package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de un pedido. Price es el total de la línea; el unitario se deriva.
type OrderLineRequest struct {
	PurchaseID string          `json:"purchase_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      int64           `json:"price"`
}

// OrderRequest body para POST /api/orders y PUT /api/orders/:id.
// SaleDate vacío = hoy (creación) o sin cambio (edición).
type OrderRequest struct {
	CustomerName   string             `json:"customer_name,omitempty"`
	DeliveryMethod string             `json:"delivery_method,omitempty" validate:"omitempty,oneof=pickup delivery"`
	ShippingFee    int64              `json:"shipping_fee"`
	AmountPaid     int64              `json:"amount_paid"`
	SaleDate       string             `json:"sale_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes          string             `json:"notes,omitempty"`
	Items          []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderLineResponse línea de pedido expuesta.
type OrderLineResponse struct {
	ID          string          `json:"id"`
	PurchaseID  string          `json:"purchase_id"`
	ProductName string          `json:"product_name,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   int64           `json:"unit_price"`
	TotalPrice  int64           `json:"total_price"`
}

// OrderResponse pedido multi-línea.
type OrderResponse struct {
	ID              string              `json:"id"`
	CustomerName    string              `json:"customer_name,omitempty"`
	DeliveryMethod  string              `json:"delivery_method"`
	ShippingFee     int64               `json:"shipping_fee"`
	TotalRevenue    int64               `json:"total_revenue"`
	AmountPaid      int64               `json:"amount_paid"`
	AmountRemaining int64               `json:"amount_remaining"`
	PaymentStatus   string              `json:"payment_status"`
	SaleDate        string              `json:"sale_date"`
	Notes           string              `json:"notes,omitempty"`
	Items           []OrderLineResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderViewDTO proyección común de ventas antiguas y pedidos nuevos (historial y reportes).
type OrderViewDTO struct {
	ID              string                `json:"id"`
	Kind            string                `json:"kind"`
	IsNewOrder      bool                  `json:"is_new_order"`
	SaleDate        string                `json:"sale_date"`
	CustomerName    string                `json:"customer_name,omitempty"`
	DeliveryMethod  string                `json:"delivery_method"`
	ShippingFee     int64                 `json:"shipping_fee"`
	TotalRevenue    int64                 `json:"total_revenue"`
	ExpensesTotal   int64                 `json:"expenses_total"`
	ActualRevenue   int64                 `json:"actual_revenue"`
	AmountPaid      int64                 `json:"amount_paid"`
	AmountRemaining int64                 `json:"amount_remaining"`
	PaymentStatus   string                `json:"payment_status"`
	Notes           string                `json:"notes,omitempty"`
	TotalItems      int                   `json:"total_items"`
	Items           []OrderLineResponse   `json:"items"`
	Expenses        []SaleExpenseResponse `json:"expenses,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}
