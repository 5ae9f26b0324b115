package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// DailyExpenseUseCase gastos operativos diarios (combustible, arriendo, servicios, publicidad).
// No tocan stock ni pedidos; solo restan en la ganancia real del dashboard.
type DailyExpenseUseCase struct {
	repo  repository.DailyExpenseRepository
	cache ports.ReportCache
}

// NewDailyExpenseUseCase construye el caso de uso. cache puede ser nil.
func NewDailyExpenseUseCase(repo repository.DailyExpenseRepository, cache ports.ReportCache) *DailyExpenseUseCase {
	return &DailyExpenseUseCase{repo: repo, cache: cache}
}

// Create registra un gasto. Monto > 0 y descripción obligatoria.
func (uc *DailyExpenseUseCase) Create(ctx context.Context, in dto.CreateDailyExpenseRequest) (*dto.DailyExpenseResponse, error) {
	if !entity.IsValidDailyExpenseType(in.ExpenseType) {
		return nil, fmt.Errorf("%w: tipo de gasto %q", domain.ErrInvalidInput, in.ExpenseType)
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: la descripción es obligatoria", domain.ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a 0", domain.ErrInvalidInput)
	}
	date, err := ledger.ParseDate(in.ExpenseDate)
	if err != nil {
		return nil, err
	}
	e := &entity.DailyExpense{
		ID:          uuid.New().String(),
		ExpenseDate: date,
		ExpenseType: in.ExpenseType,
		Description: description,
		Amount:      in.Amount,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return toDailyExpenseResponse(e), nil
}

// Delete elimina un gasto.
func (uc *DailyExpenseUseCase) Delete(ctx context.Context, id string) error {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: gasto diario %s", domain.ErrNotFound, id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	inventory.InvalidateReports(ctx, uc.cache)
	return nil
}

// ListByDate gastos de un día (vacío = hoy) con su total.
func (uc *DailyExpenseUseCase) ListByDate(ctx context.Context, date string) (*dto.DailyExpenseListResponse, error) {
	d, err := ledger.ParseDate(date)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByDate(ctx, d)
	if err != nil {
		return nil, err
	}
	out := &dto.DailyExpenseListResponse{
		Date:     ledger.FormatDate(d),
		Expenses: make([]dto.DailyExpenseResponse, 0, len(list)),
	}
	for _, e := range list {
		out.Total += e.Amount
		out.Expenses = append(out.Expenses, *toDailyExpenseResponse(e))
	}
	return out, nil
}

func toDailyExpenseResponse(e *entity.DailyExpense) *dto.DailyExpenseResponse {
	return &dto.DailyExpenseResponse{
		ID:          e.ID,
		ExpenseDate: ledger.FormatDate(e.ExpenseDate),
		ExpenseType: e.ExpenseType,
		Description: e.Description,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
	}
}
