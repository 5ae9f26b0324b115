package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ledger-api/internal/application/analytics"
)

// ReportHandler historial de pedidos, estadísticas y reportes del negocio.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Orders godoc
// @Summary      Historial de pedidos (ventas antiguas y pedidos multi-línea)
// @Description  Sin fecha devuelve todo, por fecha de venta descendente. Con fecha, solo ese día.
// @Tags         reports
// @Produce      json
// @Param        date  query     string  false  "YYYY-MM-DD"
// @Success      200   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/orders [get]
func (h *ReportHandler) Orders(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		list, err := h.uc.AllOrders(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, fiber.StatusOK, list)
	}
	list, err := h.uc.OrdersByDate(c.Context(), date)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, list)
}

// Stats godoc
// @Summary      Conteos e ingresos combinados (total y hoy)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ActionResponse
// @Router       /api/reports/stats [get]
func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.CombinedStats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Summary godoc
// @Summary      Reporte del negocio: costo, ingresos, ganancia, margen y top productos
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ActionResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.BusinessReport(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Daily godoc
// @Summary      Reporte diario (compras, ingresos pagados y pendientes, ganancia)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ActionResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	out, err := h.uc.DailyReport(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// ExportDaily godoc
// @Summary      Descargar el reporte diario
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format  query  string  false  "xlsx (default) | pdf"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily/export [get]
func (h *ReportHandler) ExportDaily(c *fiber.Ctx) error {
	file, err := h.uc.ExportDailyReport(c.Context(), c.Query("format", "xlsx"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(file.Content)
}
