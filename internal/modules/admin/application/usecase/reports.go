package usecase

import (
	"context"
	"fmt"
	"io"

	"mesaYaAdmin/internal/modules/admin/application/port"
	reports "mesaYaAdmin/internal/modules/reports/domain"
)

const MsgReportLoadFailed = "No se pudo cargar el reporte"

type ReportsUseCase struct {
	gateway  port.ReportGateway
	exporter port.ReportExporter
}

func NewReportsUseCase(gateway port.ReportGateway, exporter port.ReportExporter) *ReportsUseCase {
	return &ReportsUseCase{gateway: gateway, exporter: exporter}
}

// Chart fetches the weekday aggregate and reshapes it into the weekly chart.
func (uc *ReportsUseCase) Chart(ctx context.Context, token string) (reports.Chart, error) {
	points, err := uc.gateway.OccupancyReport(ctx, token)
	if err != nil {
		return reports.Chart{}, fmt.Errorf("occupancy report: %w", err)
	}
	return reports.NewChart(reports.Reshape(points)), nil
}

// Export writes the chart through the configured exporter and returns its
// content type.
func (uc *ReportsUseCase) Export(ctx context.Context, token string, w io.Writer) (string, error) {
	if uc.exporter == nil {
		return "", fmt.Errorf("report export: %w", port.ErrNotFound)
	}
	chart, err := uc.Chart(ctx, token)
	if err != nil {
		return "", err
	}
	if err := uc.exporter.Export(w, chart); err != nil {
		return "", fmt.Errorf("export occupancy: %w", err)
	}
	return uc.exporter.ContentType(), nil
}
