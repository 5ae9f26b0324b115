// Package money formatea montos enteros en đồng para reportes.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Vietnamese)

// Format monto con separador de miles local y sufijo đ (ej. 1.500.000đ).
func Format(amount int64) string {
	return printer.Sprintf("%dđ", amount)
}

// Quantity cantidad decimal sin ceros sobrantes.
func Quantity(q decimal.Decimal) string {
	return q.String()
}

// Percent porcentaje con dos decimales.
func Percent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}
