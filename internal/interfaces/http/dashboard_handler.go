package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ledger-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los KPIs históricos y del día, pedidos recientes e inventario.
// GET /api/dashboard
//
// No requiere parámetros; "hoy" se calcula en el servidor (UTC).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, summary)
}
