package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/expense"
)

// DailyExpenseHandler gastos operativos diarios.
type DailyExpenseHandler struct {
	uc *expense.DailyExpenseUseCase
}

func NewDailyExpenseHandler(uc *expense.DailyExpenseUseCase) *DailyExpenseHandler {
	return &DailyExpenseHandler{uc: uc}
}

// Create POST /api/daily-expenses
func (h *DailyExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDailyExpenseRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// List GET /api/daily-expenses?date=YYYY-MM-DD (vacío = hoy)
func (h *DailyExpenseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByDate(c.Context(), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete DELETE /api/daily-expenses/:id
func (h *DailyExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return done(c, "gasto eliminado")
}
