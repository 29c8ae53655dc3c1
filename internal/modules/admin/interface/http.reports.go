package transport

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaAdmin/internal/modules/admin/application/port"
	"mesaYaAdmin/internal/modules/admin/application/usecase"
	reports "mesaYaAdmin/internal/modules/reports/domain"
	"mesaYaAdmin/internal/shared/httputil"
)

const (
	svgWidth      = 560
	svgHeight     = 300
	svgPlotHeight = 220
	svgTop        = 30
	svgBarWidth   = 50
	svgBarGap     = 30
)

type chartBar struct {
	Label   string
	Value   int
	X       int
	Y       int
	Width   int
	Height  int
	CenterX int
	ValueY  int
	LabelY  int
}

type chartView struct {
	Title    string
	Error    string
	Width    int
	Height   int
	Baseline int
	Bars     []chartBar
}

func newChartView(chart reports.Chart) chartView {
	view := chartView{
		Title:    chart.Title,
		Width:    svgWidth,
		Height:   svgHeight,
		Baseline: svgTop + svgPlotHeight,
	}
	maxValue := chart.Series.Max()
	for i, bar := range chart.Bars() {
		height := 0
		if maxValue > 0 {
			height = svgPlotHeight * bar.Value / maxValue
		}
		x := svgBarGap/2 + i*(svgBarWidth+svgBarGap)
		view.Bars = append(view.Bars, chartBar{
			Label:   bar.Label,
			Value:   bar.Value,
			X:       x,
			Y:       view.Baseline - height,
			Width:   svgBarWidth,
			Height:  height,
			CenterX: x + svgBarWidth/2,
			ValueY:  view.Baseline - height - 6,
			LabelY:  view.Baseline + 18,
		})
	}
	return view
}

type occupancyResponse struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// ReportsHandler serves the occupancy chart and its exports.
type ReportsHandler struct {
	uc     *usecase.ReportsUseCase
	errors *httputil.ErrorMapper
}

func NewReportsHandler(uc *usecase.ReportsUseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc, errors: newAPIErrorMapper()}
}

func (h *ReportsHandler) Register(g *echo.Group) {
	g.GET("/reportes", h.Page)
	g.GET("/reportes/grafico", h.Chart)
	g.GET("/reportes/ocupacion.json", h.JSON)
	g.GET("/reportes/ocupacion.pdf", h.PDF)
}

func (h *ReportsHandler) Page(c echo.Context) error {
	return c.Render(http.StatusOK, "reports", newPage(c, "Reportes", "reportes"))
}

func (h *ReportsHandler) Chart(c echo.Context) error {
	chart, err := h.uc.Chart(c.Request().Context(), tokenFrom(c))
	if err != nil {
		return c.Render(http.StatusOK, "reports/chart", chartView{Error: usecase.MsgReportLoadFailed})
	}
	return c.Render(http.StatusOK, "reports/chart", newChartView(chart))
}

func (h *ReportsHandler) JSON(c echo.Context) error {
	chart, err := h.uc.Chart(c.Request().Context(), tokenFrom(c))
	if err != nil {
		info := h.errors.Map(err)
		return echo.NewHTTPError(info.Status, info.Message).SetInternal(err)
	}
	return c.JSON(http.StatusOK, occupancyResponse{Title: chart.Title, Labels: chart.Labels(), Data: chart.Data()})
}

func (h *ReportsHandler) PDF(c echo.Context) error {
	var buf bytes.Buffer
	contentType, err := h.uc.Export(c.Request().Context(), tokenFrom(c), &buf)
	if err != nil {
		info := h.errors.Map(err)
		return echo.NewHTTPError(info.Status, info.Message).SetInternal(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="ocupacion.pdf"`)
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

// newAPIErrorMapper maps gateway failures of the JSON endpoints to statuses.
func newAPIErrorMapper() *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithMapping(port.ErrForbidden, http.StatusForbidden, "access forbidden").
		WithMapping(port.ErrNotFound, http.StatusNotFound, "resource not found").
		WithMapping(port.ErrValidation, http.StatusUnprocessableEntity, "request rejected").
		WithDefault(http.StatusBadGateway, usecase.MsgReportLoadFailed)
}
