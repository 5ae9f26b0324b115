package analytics

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/application/dto"
)

// DailyReportRenderer genera un archivo descargable (XLSX, PDF) a partir del reporte diario.
type DailyReportRenderer interface {
	RenderDailyReport(ctx context.Context, report *dto.DailyReportDTO) ([]byte, error)
}

// ExportFormat formato de exportación registrado.
type ExportFormat struct {
	Extension   string
	ContentType string
	Renderer    DailyReportRenderer
}

// ExportFile archivo generado listo para enviar.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
