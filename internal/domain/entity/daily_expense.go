package entity

import "time"

// Tipos de gasto operativo diario.
const (
	DailyExpenseFuel      = "fuel"
	DailyExpenseRent      = "rent"
	DailyExpenseUtilities = "utilities"
	DailyExpenseMarketing = "marketing"
	DailyExpenseOther     = "other"
)

// DailyExpense gasto operativo de un día, independiente de cualquier pedido.
type DailyExpense struct {
	ID          string    `db:"id"`
	ExpenseDate time.Time `db:"expense_date"`
	ExpenseType string    `db:"expense_type"`
	Description string    `db:"description"`
	Amount      int64     `db:"amount"`
	CreatedAt   time.Time `db:"created_at"`
}

// IsValidDailyExpenseType valida el tipo de gasto diario.
func IsValidDailyExpenseType(t string) bool {
	switch t {
	case DailyExpenseFuel, DailyExpenseRent, DailyExpenseUtilities, DailyExpenseMarketing, DailyExpenseOther:
		return true
	}
	return false
}
