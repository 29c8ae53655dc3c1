package transport

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"mesaYaAdmin/internal/modules/admin/application/usecase"
	tables "mesaYaAdmin/internal/modules/tables/domain"
)

type tableForm struct {
	ID       string
	Number   string
	Capacity string
	Location string
	Action   string
	Editing  bool
}

func newTableForm(id string, input tables.TableInput) tableForm {
	form := tableForm{ID: id, Number: input.Number, Capacity: input.Capacity, Location: input.Location, Action: "/mesas"}
	if id != "" {
		form.Action = "/mesas/" + id
		form.Editing = true
	}
	return form
}

type tablesPage struct {
	Page
	Form tableForm
	List usecase.ListView[tables.Table]
}

// TablesHandler serves the table list and form.
type TablesHandler struct {
	uc *usecase.TablesUseCase
}

func NewTablesHandler(uc *usecase.TablesUseCase) *TablesHandler {
	return &TablesHandler{uc: uc}
}

func (h *TablesHandler) Register(g *echo.Group) {
	g.GET("/mesas", h.Page)
	g.GET("/mesas/lista", h.List)
	g.POST("/mesas", h.Create)
	g.POST("/mesas/:id", h.Update)
	g.POST("/mesas/:id/eliminar", h.Delete)
}

func (h *TablesHandler) newPage(c echo.Context, id string, input tables.TableInput) tablesPage {
	return tablesPage{
		Page: newPage(c, "Mesas", "mesas"),
		Form: newTableForm(id, input),
		List: usecase.LoadingList[tables.Table](),
	}
}

func (h *TablesHandler) Page(c echo.Context) error {
	page := h.newPage(c, "", tables.TableInput{})
	if id := strings.TrimSpace(c.QueryParam("editar")); id != "" {
		input, err := h.uc.Edit(c.Request().Context(), tokenFrom(c), id)
		if err != nil {
			page.Error = failureMessage("No se pudo cargar la mesa", err)
			return c.Render(failureStatus(err), "tables", page)
		}
		page.Form = newTableForm(id, input)
	}
	return c.Render(http.StatusOK, "tables", page)
}

func (h *TablesHandler) List(c echo.Context) error {
	return c.Render(http.StatusOK, "tables/list", h.uc.List(c.Request().Context(), tokenFrom(c)))
}

func (h *TablesHandler) Create(c echo.Context) error {
	return h.save(c, "", "creado")
}

func (h *TablesHandler) Update(c echo.Context) error {
	return h.save(c, strings.TrimSpace(c.Param("id")), "actualizado")
}

func (h *TablesHandler) save(c echo.Context, id, flash string) error {
	input := tables.TableInput{
		Number:   c.FormValue("numero_mesa"),
		Capacity: c.FormValue("capacidad"),
		Location: c.FormValue("ubicacion"),
	}
	if err := h.uc.Save(c.Request().Context(), tokenFrom(c), id, input); err != nil {
		page := h.newPage(c, id, input)
		page.Error = failureMessage("Error al guardar la mesa", err)
		return c.Render(failureStatus(err), "tables", page)
	}
	return redirectWithFlash(c, "/mesas", flash)
}

func (h *TablesHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), tokenFrom(c), c.Param("id")); err != nil {
		page := h.newPage(c, "", tables.TableInput{})
		page.Error = failureMessage("Error al borrar la mesa", err)
		return c.Render(failureStatus(err), "tables", page)
	}
	return redirectWithFlash(c, "/mesas", "eliminado")
}
