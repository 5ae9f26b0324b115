// Package excel exporta reportes a XLSX con excelize.
package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/dto"
)

var _ analytics.DailyReportRenderer = (*DailyReportRenderer)(nil)

// ContentType MIME de los archivos XLSX.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheetName = "Reporte diario"

var headings = []string{
	"Fecha", "Compras", "Costo compras", "Pedidos", "Ingresos",
	"Pagado", "Pendiente", "Ganancia", "Margen %",
}

// DailyReportRenderer genera el reporte diario como hoja de cálculo.
// Los montos se guardan como números con formato de miles, no como texto.
type DailyReportRenderer struct{}

func NewDailyReportRenderer() *DailyReportRenderer { return &DailyReportRenderer{} }

// RenderDailyReport una fila por fecha más una fila de totales.
func (r *DailyReportRenderer) RenderDailyReport(_ context.Context, report *dto.DailyReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excel: hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	moneyFmt := "#,##0"
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	for i, h := range headings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("excel: encabezado: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headings), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("excel: encabezado: %w", err)
	}

	var total dto.DailyReportRowDTO
	rowNo := 2
	for _, d := range report.Rows {
		if err := setRow(f, rowNo, d.Date, d); err != nil {
			return nil, err
		}
		total.PurchaseCount += d.PurchaseCount
		total.PurchaseCost += d.PurchaseCost
		total.OrderCount += d.OrderCount
		total.SalesRevenue += d.SalesRevenue
		total.PaidRevenue += d.PaidRevenue
		total.UnpaidRevenue += d.UnpaidRevenue
		total.Profit += d.Profit
		rowNo++
	}
	if err := setRow(f, rowNo, "Total", total); err != nil {
		return nil, err
	}
	first, _ := excelize.CoordinatesToCellName(1, rowNo)
	end, _ := excelize.CoordinatesToCellName(len(headings), rowNo)
	if err := f.SetCellStyle(sheetName, first, end, bold); err != nil {
		return nil, fmt.Errorf("excel: totales: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "C2", fmt.Sprintf("C%d", rowNo), money); err != nil {
		return nil, fmt.Errorf("excel: formato: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "E2", fmt.Sprintf("H%d", rowNo), money); err != nil {
		return nil, fmt.Errorf("excel: formato: %w", err)
	}
	_ = f.SetColWidth(sheetName, "A", "A", 14)
	_ = f.SetColWidth(sheetName, "B", "I", 16)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, rowNo int, label string, d dto.DailyReportRowDTO) error {
	values := []any{
		label, d.PurchaseCount, d.PurchaseCost, d.OrderCount, d.SalesRevenue,
		d.PaidRevenue, d.UnpaidRevenue, d.Profit,
	}
	if label != "Total" {
		values = append(values, d.ProfitMargin.InexactFloat64())
	}
	cell, _ := excelize.CoordinatesToCellName(1, rowNo)
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("excel: fila %d: %w", rowNo, err)
	}
	return nil
}
