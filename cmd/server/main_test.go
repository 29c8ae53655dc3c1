package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"mesaYaAdmin/internal/config"
	reports "mesaYaAdmin/internal/modules/reports/domain"
)

func TestWriteReportText(t *testing.T) {
	chart := reports.NewChart(reports.WeeklySeries{0, 0, 0, 7, 0, 0, 2})
	var buf bytes.Buffer
	if err := writeReportText(&buf, chart, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected title, 7 days and total, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Reservas por Día de la Semana (2024-05-01)" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[4], "Miércoles") || !strings.HasSuffix(lines[4], "####### 7") {
		t.Fatalf("unexpected wednesday line %q", lines[4])
	}
	if lines[8] != "Total: 9" {
		t.Fatalf("unexpected total line %q", lines[8])
	}
}

func TestWriteReportTextScalesLargeCounts(t *testing.T) {
	chart := reports.NewChart(reports.WeeklySeries{0, 1, 0, 1_000_000, 0, 0, 500_000})
	var buf bytes.Buffer
	if err := writeReportText(&buf, chart, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	bars := map[string]int{}
	for _, line := range lines[1:8] {
		bars[strings.Fields(line)[0]] = strings.Count(line, "#")
	}
	want := map[string]int{"Domingo": 0, "Lunes": 1, "Martes": 0, "Miércoles": reportBarWidth, "Jueves": 0, "Viernes": 0, "Sábado": reportBarWidth / 2}
	if diff := cmp.Diff(want, bars); diff != "" {
		t.Fatalf("bar widths mismatch (-want +got):\n%s", diff)
	}
}

func TestRunReportValidatesFormatBeforeWriting(t *testing.T) {
	prevFormat, prevOutput := reportFormat, reportOutput
	t.Cleanup(func() { reportFormat, reportOutput = prevFormat, prevOutput })

	tests := []struct {
		name   string
		format string
		output bool
	}{
		{name: "unknown format", format: "foo", output: true},
		{name: "pdf to stdout", format: "pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "report.out")
			reportFormat, reportOutput = tt.format, ""
			if tt.output {
				reportOutput = path
			}
			if err := runReport(reportCmd, nil); err == nil {
				t.Fatal("expected an error")
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Fatalf("expected no output file, stat returned %v", err)
			}
		})
	}
}

func TestWriteReportJSON(t *testing.T) {
	chart := reports.NewChart(reports.WeeklySeries{1, 2, 3, 4, 5, 6, 7})
	var buf bytes.Buffer
	if err := writeReportJSON(&buf, chart); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got struct {
		Title  string   `json:"title"`
		Labels []string `json:"labels"`
		Data   []int    `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 7}, got.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if got.Labels[0] != "Domingo" || got.Labels[6] != "Sábado" {
		t.Fatalf("unexpected labels %v", got.Labels)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	if !names["serve"] || !names["report"] {
		t.Fatalf("expected serve and report subcommands, got %v", names)
	}
}

func TestNewServerWiresRoutes(t *testing.T) {
	cfg := &config.Config{
		REST: config.RESTConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
		Kafka: config.KafkaConfig{Topics: map[string][]string{
			"mesas":    {"mesaya.mesas.events"},
			"reservas": {"mesaya.reservas.events"},
		}},
		Websocket: config.WebsocketConfig{AllowedActions: []string{"created"}},
	}
	e, registry, err := newServer(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	topics := registry.Topics()
	sort.Strings(topics)
	if diff := cmp.Diff([]string{"mesaya.mesas.events", "mesaya.reservas.events"}, topics); diff != "" {
		t.Fatalf("topics mismatch (-want +got):\n%s", diff)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", rec.Code)
	}

	routes := map[string]bool{}
	for _, route := range e.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{"GET /", "GET /clientes", "GET /mesas", "GET /reportes", "GET /ws/reservas", "GET /ws/notificaciones", "POST /eventos"} {
		if !routes[want] {
			t.Fatalf("expected route %s to be registered", want)
		}
	}
}

func TestNewServerRejectsBadPublicKey(t *testing.T) {
	cfg := &config.Config{Security: config.SecurityConfig{JWTPublicKey: "not a key"}}
	if _, _, err := newServer(cfg); err == nil {
		t.Fatalf("expected invalid public key to fail")
	}
}
