package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/sales"
)

// OrderHandler pedidos multi-línea.
type OrderHandler struct {
	uc *sales.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *sales.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido multi-línea
// @Description  Todas las líneas descuentan stock en una sola transacción; si una falla, no se aplica ninguna.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      dto.OrderRequest  true  "pedido"
// @Success      201   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.OrderRequest
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
// @Summary      Obtener un pedido con sus líneas
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.ActionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Editar pedido
// @Description  Aplica al stock el efecto neto entre las líneas anteriores y las nuevas.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "ID del pedido"
// @Param        body  body      dto.OrderRequest  true  "pedido"
// @Success      200   {object}  dto.ActionResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar pedido (devuelve el stock de cada línea)
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.ActionResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return done(c, "pedido eliminado")
}

// TogglePayment godoc
// @Summary      Marcar pedido como pagado o no pagado
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del pedido"
// @Param        body  body      dto.PaymentStatusRequest  true  "paid | unpaid"
// @Success      200   {object}  dto.ActionResponse
// @Router       /api/orders/{id}/payment [patch]
func (h *OrderHandler) TogglePayment(c *fiber.Ctx) error {
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
