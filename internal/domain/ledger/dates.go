package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ledger-api/internal/domain"
)

// Las fechas de negocio (compra, venta, gasto) son días calendario: medianoche UTC.

// ParseDate interpreta YYYY-MM-DD. Vacío devuelve hoy.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Today(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (formato YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// Today fecha de negocio actual según el reloj local.
func Today() time.Time {
	return DateOf(time.Now())
}

// DateOf trunca un instante a su día calendario local.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
