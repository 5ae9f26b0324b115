package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/ledger-api/internal/application/ports"
)

// cached lee key del caché de reportes o la construye y la guarda.
// Un fallo del caché nunca falla la lectura: se registra y se calcula desde el almacén.
// La generación se toma antes de build; un reporte armado con datos previos a una
// invalidación se guarda en la generación vieja y no se vuelve a leer.
func cached[T any](ctx context.Context, cache ports.ReportCache, key string, ttl time.Duration, build func() (T, error)) (T, error) {
	if cache == nil {
		return build()
	}
	gen, err := cache.Generation(ctx)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("caché de reportes no disponible")
		return build()
	}
	var hit T
	ok, err := cache.Get(ctx, gen, key, &hit)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("caché de reportes no disponible")
	} else if ok {
		return hit, nil
	}
	out, err := build()
	if err != nil {
		return out, err
	}
	if err := cache.Set(ctx, gen, key, out, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar en el caché de reportes")
	}
	return out, nil
}
