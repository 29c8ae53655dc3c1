package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	adminuc "mesaYaAdmin/internal/modules/admin/application/usecase"
	admininfra "mesaYaAdmin/internal/modules/admin/infrastructure"
	reports "mesaYaAdmin/internal/modules/reports/domain"
)

var (
	reportToken  string
	reportFormat string
	reportOutput string
)

// reportCmd prints the weekly occupancy without starting the server.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the weekly occupancy report",
	Long: `Fetch the reservations per weekday from the API and print the
Sunday to Saturday series.

Formats: text (default), json, pdf. PDF output requires --output.`,
	RunE: runReport,
}

// reportBarWidth caps the text bars; larger counts are scaled down.
const reportBarWidth = 40

func init() {
	reportCmd.Flags().StringVar(&reportToken, "token", "", "bearer token forwarded to the API")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "text", "output format: text, json or pdf")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write to this file instead of stdout")
}

func runReport(cmd *cobra.Command, _ []string) error {
	format, err := parseReportFormat(reportFormat, reportOutput)
	if err != nil {
		return err
	}

	cfg, closeLog, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer closeLog()

	api := admininfra.NewAPIClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)
	uc := adminuc.NewReportsUseCase(api, admininfra.NewOccupancyPDFExporter())

	out := cmd.OutOrStdout()
	if reportOutput != "" {
		file, err := os.Create(reportOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	if format == "pdf" {
		_, err := uc.Export(cmd.Context(), reportToken, out)
		return err
	}

	chart, err := uc.Chart(cmd.Context(), reportToken)
	if err != nil {
		return err
	}
	if format == "json" {
		return writeReportJSON(out, chart)
	}
	return writeReportText(out, chart, time.Now())
}

// parseReportFormat validates the flags before anything is fetched or written.
func parseReportFormat(format, output string) (string, error) {
	switch normalized := strings.ToLower(strings.TrimSpace(format)); normalized {
	case "", "text":
		return "text", nil
	case "json":
		return normalized, nil
	case "pdf":
		if output == "" {
			return "", fmt.Errorf("pdf output requires --output")
		}
		return normalized, nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

func writeReportJSON(w io.Writer, chart reports.Chart) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"title":  chart.Title,
		"labels": chart.Labels(),
		"data":   chart.Data(),
	})
}

func writeReportText(w io.Writer, chart reports.Chart, now time.Time) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n", chart.Title, now.Format("2006-01-02")); err != nil {
		return err
	}
	highest := chart.Series.Max()
	for _, bar := range chart.Bars() {
		if _, err := fmt.Fprintf(w, "%-10s %s %d\n", bar.Label, strings.Repeat("#", barLength(bar.Value, highest)), bar.Value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total: %d\n", chart.Series.Total())
	return err
}

func barLength(value, highest int) int {
	if value <= 0 {
		return 0
	}
	if highest <= reportBarWidth {
		return value
	}
	return max(int(float64(value)*reportBarWidth/float64(highest)), 1)
}
