package dto

import "time"

// CreateDailyExpenseRequest body para POST /api/daily-expenses.
type CreateDailyExpenseRequest struct {
	ExpenseDate string `json:"expense_date" validate:"required,datetime=2006-01-02"`
	ExpenseType string `json:"expense_type" validate:"required,oneof=fuel rent utilities marketing other"`
	Description string `json:"description" validate:"required"`
	Amount      int64  `json:"amount" validate:"gt=0"`
}

// DailyExpenseResponse gasto operativo diario.
type DailyExpenseResponse struct {
	ID          string    `json:"id"`
	ExpenseDate string    `json:"expense_date"`
	ExpenseType string    `json:"expense_type"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// DailyExpenseListResponse gastos de un día con su total.
type DailyExpenseListResponse struct {
	Date     string                 `json:"date"`
	Total    int64                  `json:"total"`
	Expenses []DailyExpenseResponse `json:"expenses"`
}
