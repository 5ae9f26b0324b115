package inventory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/ledger-api/internal/application/ports"
)

// InvalidateReports descarta el caché de reportes tras una mutación confirmada.
// Un fallo del caché no revierte la operación: se registra y se sigue.
func InvalidateReports(ctx context.Context, cache ports.ReportCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar el caché de reportes")
	}
}
