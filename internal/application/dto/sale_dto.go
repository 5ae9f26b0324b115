package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales (venta de un solo lote).
// TotalPrice es el ingreso total de la venta; el precio unitario se deriva.
type CreateSaleRequest struct {
	PurchaseID     string          `json:"purchase_id" validate:"required"`
	Quantity       decimal.Decimal `json:"quantity"`
	TotalPrice     int64           `json:"total_price"`
	ShippingFee    int64           `json:"shipping_fee"`
	CustomerName   string          `json:"customer_name,omitempty"`
	DeliveryMethod string          `json:"delivery_method,omitempty" validate:"omitempty,oneof=pickup delivery"`
	AmountPaid     int64           `json:"amount_paid"`
	SaleDate       string          `json:"sale_date" validate:"required,datetime=2006-01-02"`
	Notes          string          `json:"notes,omitempty"`
	NotesInternal  string          `json:"notes_internal,omitempty"`
}

// UpdateSaleDetailsRequest body para PATCH /api/sales/:id: solo pago, envío y notas.
// Nunca modifica el stock.
type UpdateSaleDetailsRequest struct {
	CustomerName   string `json:"customer_name,omitempty"`
	DeliveryMethod string `json:"delivery_method,omitempty" validate:"omitempty,oneof=pickup delivery"`
	AmountPaid     int64  `json:"amount_paid"`
	ShippingFee    int64  `json:"shipping_fee"`
	Notes          string `json:"notes,omitempty"`
	NotesInternal  string `json:"notes_internal,omitempty"`
}

// UpdateSaleRequest body para PUT /api/sales/:id: edición completa (lote, cantidad, ingreso, pago).
type UpdateSaleRequest struct {
	PurchaseID     string          `json:"purchase_id" validate:"required"`
	Quantity       decimal.Decimal `json:"quantity"`
	TotalRevenue   int64           `json:"total_revenue"`
	CustomerName   string          `json:"customer_name,omitempty"`
	DeliveryMethod string          `json:"delivery_method,omitempty" validate:"omitempty,oneof=pickup delivery"`
	AmountPaid     int64           `json:"amount_paid"`
	ShippingFee    int64           `json:"shipping_fee"`
	SaleDate       string          `json:"sale_date" validate:"required,datetime=2006-01-02"`
	Notes          string          `json:"notes,omitempty"`
	NotesInternal  string          `json:"notes_internal,omitempty"`
}

// PaymentStatusRequest body para el cambio rápido de estado de pago.
type PaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid unpaid"`
}

// AddSaleExpenseRequest body para POST /api/sales/:id/expenses. Amount con signo.
type AddSaleExpenseRequest struct {
	ExpenseType string `json:"expense_type" validate:"required,oneof=shipping_cost packaging other"`
	Description string `json:"description" validate:"required"`
	Amount      int64  `json:"amount"`
}

// SaleExpenseResponse gasto ad-hoc de una venta.
type SaleExpenseResponse struct {
	ID          string    `json:"id"`
	SaleID      string    `json:"sale_id"`
	ExpenseType string    `json:"expense_type"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// SaleResponse venta antigua con sus gastos.
type SaleResponse struct {
	ID              string                `json:"id"`
	PurchaseID      string                `json:"purchase_id"`
	ProductName     string                `json:"product_name,omitempty"`
	Unit            string                `json:"unit,omitempty"`
	Quantity        decimal.Decimal       `json:"quantity"`
	UnitPrice       int64                 `json:"unit_price"`
	TotalRevenue    int64                 `json:"total_revenue"`
	ShippingFee     int64                 `json:"shipping_fee"`
	CustomerName    string                `json:"customer_name,omitempty"`
	DeliveryMethod  string                `json:"delivery_method"`
	AmountPaid      int64                 `json:"amount_paid"`
	AmountRemaining int64                 `json:"amount_remaining"`
	PaymentStatus   string                `json:"payment_status"`
	SaleDate        string                `json:"sale_date"`
	Notes           string                `json:"notes,omitempty"`
	NotesInternal   string                `json:"notes_internal,omitempty"`
	Expenses        []SaleExpenseResponse `json:"expenses"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}
