package infrastructure

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/phpdave11/gofpdf"

	"mesaYaAdmin/internal/modules/admin/application/port"
	reports "mesaYaAdmin/internal/modules/reports/domain"
)

const (
	chartLeft   = 25.0
	chartBottom = 200.0
	chartHeight = 120.0
	barWidth    = 18.0
	barGap      = 5.0
)

// OccupancyPDFExporter draws the weekly occupancy chart on an A4 page.
type OccupancyPDFExporter struct{}

func NewOccupancyPDFExporter() *OccupancyPDFExporter {
	return &OccupancyPDFExporter{}
}

func (e *OccupancyPDFExporter) ContentType() string { return "application/pdf" }

func (e *OccupancyPDFExporter) Export(w io.Writer, chart reports.Chart) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; labels carry accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(chart.Title), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(chart.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total de reservas: %d", chart.Series.Total())), "", 1, "C", false, 0, "")

	maxValue := chart.Series.Max()
	pdf.SetDrawColor(80, 80, 80)
	pdf.Line(chartLeft-2, chartBottom, chartLeft+float64(reports.DaysInWeek)*(barWidth+barGap), chartBottom)

	pdf.SetFillColor(54, 162, 235)
	for i, bar := range chart.Bars() {
		x := chartLeft + float64(i)*(barWidth+barGap)
		height := 0.0
		if maxValue > 0 {
			height = chartHeight * float64(bar.Value) / float64(maxValue)
		}
		if height > 0 {
			pdf.Rect(x, chartBottom-height, barWidth, height, "F")
		}

		pdf.SetXY(x, chartBottom-height-6)
		pdf.CellFormat(barWidth, 5, strconv.Itoa(bar.Value), "", 0, "C", false, 0, "")
		pdf.SetXY(x-2, chartBottom+2)
		pdf.CellFormat(barWidth+4, 5, tr(bar.Label), "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("render occupancy pdf: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

var _ port.ReportExporter = (*OccupancyPDFExporter)(nil)
