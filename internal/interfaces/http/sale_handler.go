package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/sales"
)

// SaleHandler ventas de un solo lote y sus gastos.
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta de un lote
// @Description  Descuenta el stock del lote en la misma transacción.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSaleRequest  true  "venta"
// @Success      201   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// GetByID godoc
// @Summary      Obtener una venta con sus gastos
// @Tags         sales
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.ActionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// UpdateDetails godoc
// @Summary      Editar pago, envío y notas (sin tocar stock)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true  "ID de la venta"
// @Param        body  body      dto.UpdateSaleDetailsRequest  true  "detalles"
// @Success      200   {object}  dto.ActionResponse
// @Router       /api/sales/{id} [patch]
func (h *SaleHandler) UpdateDetails(c *fiber.Ctx) error {
	var in dto.UpdateSaleDetailsRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateDetails(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// UpdateComplete godoc
// @Summary      Edición completa de una venta
// @Description  Revierte el consumo anterior y aplica el nuevo (puede cambiar de lote).
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID de la venta"
// @Param        body  body      dto.UpdateSaleRequest  true  "venta"
// @Success      200   {object}  dto.ActionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) UpdateComplete(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateComplete(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar una venta (devuelve el stock)
// @Tags         sales
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.ActionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return done(c, "venta eliminada")
}

// TogglePayment godoc
// @Summary      Marcar venta como pagada o no pagada
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID de la venta"
// @Param        body  body      dto.PaymentStatusRequest  true  "paid | unpaid"
// @Success      200   {object}  dto.ActionResponse
// @Router       /api/sales/{id}/payment [patch]
func (h *SaleHandler) TogglePayment(c *fiber.Ctx) error {
	var in dto.PaymentStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.TogglePayment(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// AddExpense godoc
// @Summary      Agregar gasto a una venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID de la venta"
// @Param        body  body      dto.AddSaleExpenseRequest  true  "gasto (monto con signo)"
// @Success      201   {object}  dto.ActionResponse
// @Router       /api/sales/{id}/expenses [post]
func (h *SaleHandler) AddExpense(c *fiber.Ctx) error {
	var in dto.AddSaleExpenseRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AddExpense(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// DeleteExpense godoc
// @Summary      Eliminar gasto de una venta
// @Tags         sales
// @Produce      json
// @Param        expenseId  path      string  true  "ID del gasto"
// @Success      200        {object}  dto.ActionResponse
// @Router       /api/sales/expenses/{expenseId} [delete]
func (h *SaleHandler) DeleteExpense(c *fiber.Ctx) error {
	out, err := h.uc.DeleteExpense(c.Context(), c.Params("expenseId"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}
