package dto

import (
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
)

// NewPurchaseResponse mapea un lote de stock.
func NewPurchaseResponse(b *entity.StockBatch) *PurchaseResponse {
	return &PurchaseResponse{
		ID:                b.ID,
		ProductName:       b.ProductName,
		Unit:              b.Unit,
		Quantity:          b.Quantity,
		RemainingQuantity: b.RemainingQuantity,
		SoldQuantity:      b.SoldQuantity(),
		StockLevel:        b.StockLevel(),
		TotalCost:         b.TotalCost,
		PurchaseDate:      ledger.FormatDate(b.PurchaseDate),
		SupplierName:      b.SupplierName,
		Notes:             b.Notes,
		Version:           b.Version,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// NewPurchaseList mapea una lista de lotes (nunca nil).
func NewPurchaseList(list []*entity.StockBatch) []PurchaseResponse {
	out := make([]PurchaseResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *NewPurchaseResponse(b))
	}
	return out
}

// NewSaleExpenseResponses mapea los gastos de una venta.
func NewSaleExpenseResponses(list []entity.SaleExpense) []SaleExpenseResponse {
	out := make([]SaleExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, SaleExpenseResponse{
			ID:          e.ID,
			SaleID:      e.SaleID,
			ExpenseType: e.ExpenseType,
			Description: e.Description,
			Amount:      e.Amount,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}

// NewSaleResponse mapea una venta antigua.
func NewSaleResponse(s *entity.Sale) *SaleResponse {
	return &SaleResponse{
		ID:              s.ID,
		PurchaseID:      s.PurchaseID,
		ProductName:     s.ProductName,
		Unit:            s.Unit,
		Quantity:        s.Quantity,
		UnitPrice:       s.UnitPrice,
		TotalRevenue:    s.TotalRevenue,
		ShippingFee:     s.ShippingFee,
		CustomerName:    s.CustomerName,
		DeliveryMethod:  s.DeliveryMethod,
		AmountPaid:      s.AmountPaid,
		AmountRemaining: s.AmountRemaining,
		PaymentStatus:   s.PaymentStatus,
		SaleDate:        ledger.FormatDate(s.SaleDate),
		Notes:           s.Notes,
		NotesInternal:   s.NotesInternal,
		Expenses:        NewSaleExpenseResponses(s.Expenses),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// NewOrderResponse mapea un pedido multi-línea.
func NewOrderResponse(o *entity.Order) *OrderResponse {
	items := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, OrderLineResponse{
			ID:          l.ID,
			PurchaseID:  l.PurchaseID,
			ProductName: l.ProductName,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TotalPrice:  l.TotalPrice,
		})
	}
	return &OrderResponse{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		DeliveryMethod:  o.DeliveryMethod,
		ShippingFee:     o.ShippingFee,
		TotalRevenue:    o.TotalRevenue(),
		AmountPaid:      o.AmountPaid,
		AmountRemaining: o.AmountRemaining,
		PaymentStatus:   o.PaymentStatus,
		SaleDate:        ledger.FormatDate(o.SaleDate),
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// NewOrderViewDTO mapea la proyección común.
func NewOrderViewDTO(v ledger.OrderView) OrderViewDTO {
	items := make([]OrderLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		items = append(items, OrderLineResponse{
			PurchaseID:  l.PurchaseID,
			ProductName: l.ProductName,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TotalPrice:  l.TotalPrice,
		})
	}
	out := OrderViewDTO{
		ID:              v.ID,
		Kind:            v.Kind,
		IsNewOrder:      v.IsNewOrder(),
		SaleDate:        ledger.FormatDate(v.SaleDate),
		CustomerName:    v.CustomerName,
		DeliveryMethod:  v.DeliveryMethod,
		ShippingFee:     v.ShippingFee,
		TotalRevenue:    v.TotalRevenue,
		ExpensesTotal:   v.ExpensesTotal,
		ActualRevenue:   v.ActualRevenue,
		AmountPaid:      v.AmountPaid,
		AmountRemaining: v.AmountRemaining,
		PaymentStatus:   v.PaymentStatus,
		Notes:           v.Notes,
		TotalItems:      v.TotalItems(),
		Items:           items,
		CreatedAt:       v.CreatedAt,
	}
	if len(v.Expenses) > 0 {
		out.Expenses = NewSaleExpenseResponses(v.Expenses)
	}
	return out
}

// NewOrderViewList mapea una lista de la proyección (nunca nil).
func NewOrderViewList(views []ledger.OrderView) []OrderViewDTO {
	out := make([]OrderViewDTO, 0, len(views))
	for _, v := range views {
		out = append(out, NewOrderViewDTO(v))
	}
	return out
}
