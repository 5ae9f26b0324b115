package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
)

// PurchaseHandler ingresos de mercancía (lotes de stock) e inventario.
type PurchaseHandler struct {
	uc            *inventory.PurchaseUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *inventory.PurchaseUseCase, replenishment *inventory.ReplenishmentUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, replenishment: replenishment}
}

// Create godoc
// @Summary      Registrar ingreso de mercancía
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePurchaseRequest  true  "product_name, unit, quantity, total_cost"
// @Success      201   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar ingresos (más recientes primero)
// @Tags         purchases
// @Produce      json
// @Param        limit  query     int  false  "máximo de filas (default 50)"
// @Success      200    {object}  dto.ActionResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.List(c.Context(), page.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, list)
}

// GetByID godoc
// @Summary      Obtener un ingreso
// @Tags         purchases
// @Produce      json
// @Param        id   path      string  true  "ID del lote"
// @Success      200  {object}  dto.ActionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Editar un ingreso
// @Description  El restante se recalcula como cantidad nueva menos lo ya vendido.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del lote"
// @Param        body  body      dto.UpdatePurchaseRequest  true  "datos del lote"
// @Success      200   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseRequest
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
// @Summary      Eliminar un ingreso sin ventas
// @Tags         purchases
// @Produce      json
// @Param        id   path      string  true  "ID del lote"
// @Success      200  {object}  dto.ActionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return done(c, "ingreso eliminado")
}

// Inventory godoc
// @Summary      Inventario por producto
// @Tags         inventory
// @Produce      json
// @Param        in_stock  query     bool  false  "solo lotes con restante > 0"
// @Success      200       {object}  dto.ActionResponse
// @Router       /api/inventory [get]
func (h *PurchaseHandler) Inventory(c *fiber.Ctx) error {
	var q dto.InventoryQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.ListInventory(c.Context(), q.InStock)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, list)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Productos con stock bajo o agotado, priorizados por ingreso histórico.
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.ActionResponse
// @Router       /api/inventory/restock [get]
func (h *PurchaseHandler) Replenishment(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, list)
}
