package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/purchases.
// PurchaseDate vacío = hoy. RemainingQuantity arranca igual a Quantity.
type CreatePurchaseRequest struct {
	ProductName  string          `json:"product_name" validate:"required,max=200"`
	Unit         string          `json:"unit" validate:"required,max=20"`
	Quantity     decimal.Decimal `json:"quantity"`
	TotalCost    int64           `json:"total_cost" validate:"gte=0"`
	PurchaseDate string          `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// UpdatePurchaseRequest body para PUT /api/purchases/:id.
// El restante se recalcula como Quantity - vendido.
type UpdatePurchaseRequest struct {
	ProductName  string          `json:"product_name" validate:"required,max=200"`
	Unit         string          `json:"unit" validate:"required,max=20"`
	Quantity     decimal.Decimal `json:"quantity"`
	TotalCost    int64           `json:"total_cost" validate:"gte=0"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// PurchaseResponse lote de stock expuesto por la API.
type PurchaseResponse struct {
	ID                string          `json:"id"`
	ProductName       string          `json:"product_name"`
	Unit              string          `json:"unit"`
	Quantity          decimal.Decimal `json:"quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	SoldQuantity      decimal.Decimal `json:"sold_quantity"`
	StockLevel        string          `json:"stock_level"` // out | low | good
	TotalCost         int64           `json:"total_cost"`
	PurchaseDate      string          `json:"purchase_date"`
	SupplierName      string          `json:"supplier_name,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	Version           int64           `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// InventoryQuery filtros de GET /api/inventory.
type InventoryQuery struct {
	InStock bool `query:"in_stock"`
}

// ReplenishmentSuggestionDTO producto a reponer, agregado por nombre.
type ReplenishmentSuggestionDTO struct {
	Priority           int             `json:"priority"`
	ProductName        string          `json:"product_name"`
	Unit               string          `json:"unit"`
	StockLevel         string          `json:"stock_level"` // out | low
	RemainingQuantity  decimal.Decimal `json:"remaining_quantity"`
	SoldQuantity       decimal.Decimal `json:"sold_quantity"`
	LastBatchQuantity  decimal.Decimal `json:"last_batch_quantity"`
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`
	UnitCost           int64           `json:"unit_cost"`
	EstimatedOrderCost int64           `json:"estimated_order_cost"`
	Revenue            int64           `json:"revenue"`
	LastSupplier       string          `json:"last_supplier,omitempty"`
}
