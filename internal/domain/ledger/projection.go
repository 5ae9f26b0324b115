package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// Variantes de pedido en la proyección común.
const (
	KindLegacy = "legacy"
	KindModern = "modern"
)

// OrderView proyección de solo lectura común a ventas antiguas y pedidos nuevos.
// La consumen los reportes, el historial y el dashboard; la mutación sigue separada por variante.
type OrderView struct {
	ID              string
	Kind            string
	SaleDate        time.Time
	CustomerName    string
	DeliveryMethod  string
	ShippingFee     int64
	TotalRevenue    int64
	ExpensesTotal   int64
	ActualRevenue   int64
	AmountPaid      int64
	AmountRemaining int64
	PaymentStatus   string
	Notes           string
	Lines           []LineView
	Expenses        []entity.SaleExpense
	CreatedAt       time.Time
}

// LineView línea de producto de la proyección.
type LineView struct {
	PurchaseID  string
	ProductName string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   int64
	TotalPrice  int64
}

// IsNewOrder true para pedidos multi-línea.
func (v OrderView) IsNewOrder() bool { return v.Kind == KindModern }

// TotalItems número de líneas.
func (v OrderView) TotalItems() int { return len(v.Lines) }

// FromSale proyecta una venta antigua: una línea y gastos ad-hoc incluidos en el ingreso real.
func FromSale(s *entity.Sale) OrderView {
	expenses := s.ExpensesTotal()
	return OrderView{
		ID:              s.ID,
		Kind:            KindLegacy,
		SaleDate:        s.SaleDate,
		CustomerName:    s.CustomerName,
		DeliveryMethod:  s.DeliveryMethod,
		ShippingFee:     s.ShippingFee,
		TotalRevenue:    s.TotalRevenue,
		ExpensesTotal:   expenses,
		ActualRevenue:   s.TotalRevenue + s.ShippingFee + expenses,
		AmountPaid:      s.AmountPaid,
		AmountRemaining: s.AmountRemaining,
		PaymentStatus:   s.PaymentStatus,
		Notes:           s.Notes,
		Lines: []LineView{{
			PurchaseID:  s.PurchaseID,
			ProductName: s.ProductName,
			Unit:        s.Unit,
			Quantity:    s.Quantity,
			UnitPrice:   s.UnitPrice,
			TotalPrice:  s.TotalRevenue,
		}},
		Expenses:  s.Expenses,
		CreatedAt: s.CreatedAt,
	}
}

// FromOrder proyecta un pedido multi-línea: ingreso = suma de líneas + envío.
func FromOrder(o *entity.Order) OrderView {
	revenue := o.TotalRevenue()
	lines := make([]LineView, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, LineView{
			PurchaseID:  l.PurchaseID,
			ProductName: l.ProductName,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TotalPrice:  l.TotalPrice,
		})
	}
	return OrderView{
		ID:              o.ID,
		Kind:            KindModern,
		SaleDate:        o.SaleDate,
		CustomerName:    o.CustomerName,
		DeliveryMethod:  o.DeliveryMethod,
		ShippingFee:     o.ShippingFee,
		TotalRevenue:    revenue,
		ActualRevenue:   revenue + o.ShippingFee,
		AmountPaid:      o.AmountPaid,
		AmountRemaining: o.AmountRemaining,
		PaymentStatus:   o.PaymentStatus,
		Notes:           o.Notes,
		Lines:           lines,
		CreatedAt:       o.CreatedAt,
	}
}

// Merge une ambas variantes. bySaleDate ordena por fecha de venta descendente (historial);
// si es false ordena por creación descendente (vista de un día).
func Merge(sales []*entity.Sale, orders []*entity.Order, bySaleDate bool) []OrderView {
	out := make([]OrderView, 0, len(sales)+len(orders))
	for _, s := range sales {
		out = append(out, FromSale(s))
	}
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if bySaleDate && !out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].SaleDate.After(out[j].SaleDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// GroupByDate agrupa por fecha de venta (clave YYYY-MM-DD) y devuelve las fechas descendentes.
func GroupByDate(views []OrderView) (map[string][]OrderView, []string) {
	groups := make(map[string][]OrderView)
	for _, v := range views {
		key := v.SaleDate.Format(time.DateOnly)
		groups[key] = append(groups[key], v)
	}
	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return groups, dates
}
