package ports

import (
	"context"
	"time"
)

// ReportCache define el puerto de salida para el caché de reportes (dashboard, reportes, historial).
//
// Las entradas viven dentro de una generación. Invalidate pasa a la siguiente y se llama después de
// cada mutación confirmada. Quien lee toma la generación antes de calcular y guarda con esa misma:
// si hubo una invalidación en medio, el valor queda en una generación vieja y nunca se sirve.
type ReportCache interface {
	Generation(ctx context.Context) (int64, error)
	// Get devuelve false si la clave no existe en la generación gen.
	Get(ctx context.Context, gen int64, key string, dest any) (bool, error)
	Set(ctx context.Context, gen int64, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
