package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	reports "mesaYaAdmin/internal/modules/reports/domain"
)

func TestReportsUseCaseChart(t *testing.T) {
	uc := NewReportsUseCase(&fakeReportGateway{points: []reports.OccupancyPoint{{Weekday: "3", Total: "7"}}}, nil)

	chart, err := uc.Chart(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{0, 0, 0, 7, 0, 0, 0}, chart.Data()); diff != "" {
		t.Fatalf("unexpected data (-want +got):\n%s", diff)
	}
	if chart.Title != reports.ChartTitle {
		t.Fatalf("unexpected title %q", chart.Title)
	}
}

func TestReportsUseCaseExport(t *testing.T) {
	exporter := &fakeExporter{}
	uc := NewReportsUseCase(&fakeReportGateway{points: []reports.OccupancyPoint{{Weekday: "0", Total: "1"}}}, exporter)

	var buf bytes.Buffer
	contentType, err := uc.Export(context.Background(), "", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != "text/plain" || buf.String() != reports.ChartTitle {
		t.Fatalf("unexpected export: %q %q", contentType, buf.String())
	}
	if exporter.got.Series[0] != 1 {
		t.Fatalf("exporter received wrong series: %v", exporter.got.Series)
	}

	failing := NewReportsUseCase(&fakeReportGateway{err: errors.New("down")}, exporter)
	if _, err := failing.Export(context.Background(), "", &buf); err == nil {
		t.Fatal("expected export error when report fails")
	}
}
