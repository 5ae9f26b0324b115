// Package pdf genera el reporte diario del negocio en PDF (A4 horizontal).
//
// Layout:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                        │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Compras | Costo | Pedidos | Ingresos | ...   │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TOTALES                                                      │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/pkg/money"
)

var _ analytics.DailyReportRenderer = (*MarotoPDFGenerator)(nil)

// ContentType MIME de los archivos PDF.
const ContentType = "application/pdf"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorLoss    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// columnas: Fecha, Compras, Costo, Pedidos, Ingresos, Pagado, Pendiente, Ganancia, Margen (suman 12)
var (
	tableHeaders = []string{"Fecha", "Compras", "Costo", "Pedidos", "Ingresos", "Pagado", "Pendiente", "Ganancia", "Margen"}
	tableSizes   = []int{1, 1, 2, 1, 2, 1, 1, 2, 1}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera el reporte diario con Maroto v2.
type MarotoPDFGenerator struct {
	title string
}

// NewMarotoPDFGenerator construye el generador. title encabeza el documento.
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Reporte diario"
	}
	return &MarotoPDFGenerator{title: title}
}

// RenderDailyReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderDailyReport(_ context.Context, report *dto.DailyReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	var total dto.DailyReportRowDTO
	for _, d := range report.Rows {
		m.AddRows(tableDetailRow(d))
		total.PurchaseCount += d.PurchaseCount
		total.PurchaseCost += d.PurchaseCost
		total.OrderCount += d.OrderCount
		total.SalesRevenue += d.SalesRevenue
		total.PaidRevenue += d.PaidRevenue
		total.UnpaidRevenue += d.UnpaidRevenue
		total.Profit += d.Profit
	}
	if len(report.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos registrados", props.Text{Size: 9, Top: 2, Align: align.Center, Color: colorGray}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(report *dto.DailyReportDTO) core.Row {
	generated := "—"
	if !report.GeneratedAt.IsZero() {
		generated = report.GeneratedAt.Format("02/01/2006 15:04")
	}
	return row.New(14).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generated, props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
			text.New(strconv.Itoa(len(report.Rows))+" días", props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(tableHeaders))
	for i, h := range tableHeaders {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(tableSizes[i]).Add(
			text.New(h, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 1.5}),
		))
	}
	return row.New(7).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRow(d dto.DailyReportRowDTO) core.Row {
	values := []string{
		d.Date,
		strconv.Itoa(d.PurchaseCount),
		money.Format(d.PurchaseCost),
		strconv.Itoa(d.OrderCount),
		money.Format(d.SalesRevenue),
		money.Format(d.PaidRevenue),
		money.Format(d.UnpaidRevenue),
		money.Format(d.Profit),
		money.Percent(d.ProfitMargin),
	}
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		p := props.Text{Size: 8, Align: align.Right, Top: 1}
		if i == 0 {
			p.Align = align.Left
		}
		if i == 7 && d.Profit < 0 {
			p.Color = colorLoss
		}
		cols = append(cols, col.New(tableSizes[i]).Add(text.New(v, p)))
	}
	return row.New(6).Add(cols...)
}

func totalsRow(t dto.DailyReportRowDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Size: 8, Align: align.Right, Color: colorGray, Top: 1})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1})
	}
	return row.New(8).Add(
		col.New(3).Add(label("Costo compras")),
		col.New(2).Add(value(money.Format(t.PurchaseCost))),
		col.New(2).Add(label("Ingresos")),
		col.New(2).Add(value(money.Format(t.SalesRevenue))),
		col.New(1).Add(label("Ganancia")),
		col.New(2).Add(value(money.Format(t.Profit))),
	)
}
