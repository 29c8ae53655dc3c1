package transport

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"mesaYaAdmin/internal/modules/admin/application/usecase"
	customers "mesaYaAdmin/internal/modules/customers/domain"
)

type customerForm struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Action  string
	Editing bool
}

func newCustomerForm(id string, input customers.CustomerInput) customerForm {
	form := customerForm{ID: id, Name: input.Name, Email: input.Email, Phone: input.Phone, Action: "/clientes"}
	if id != "" {
		form.Action = "/clientes/" + id
		form.Editing = true
	}
	return form
}

type customersPage struct {
	Page
	Form customerForm
	List usecase.ListView[customers.Customer]
}

// CustomersHandler serves the customer list and form.
type CustomersHandler struct {
	uc *usecase.CustomersUseCase
}

func NewCustomersHandler(uc *usecase.CustomersUseCase) *CustomersHandler {
	return &CustomersHandler{uc: uc}
}

func (h *CustomersHandler) Register(g *echo.Group) {
	g.GET("/clientes", h.Page)
	g.GET("/clientes/lista", h.List)
	g.POST("/clientes", h.Create)
	g.POST("/clientes/:id", h.Update)
	g.POST("/clientes/:id/eliminar", h.Delete)
}

func (h *CustomersHandler) newPage(c echo.Context, id string, input customers.CustomerInput) customersPage {
	return customersPage{
		Page: newPage(c, "Clientes", "clientes"),
		Form: newCustomerForm(id, input),
		List: usecase.LoadingList[customers.Customer](),
	}
}

// Page renders the form and a loading list container; ?editar=<id> selects a
// record to edit.
func (h *CustomersHandler) Page(c echo.Context) error {
	page := h.newPage(c, "", customers.CustomerInput{})

	if id := strings.TrimSpace(c.QueryParam("editar")); id != "" {
		input, err := h.uc.Edit(c.Request().Context(), tokenFrom(c), id)
		if err != nil {
			page.Error = failureMessage("No se pudo cargar el cliente", err)
			return c.Render(failureStatus(err), "customers", page)
		}
		page.Form = newCustomerForm(id, input)
	}
	return c.Render(http.StatusOK, "customers", page)
}

func (h *CustomersHandler) List(c echo.Context) error {
	view := h.uc.List(c.Request().Context(), tokenFrom(c))
	return c.Render(http.StatusOK, "customers/list", view)
}

func (h *CustomersHandler) Create(c echo.Context) error {
	return h.save(c, "", "creado")
}

func (h *CustomersHandler) Update(c echo.Context) error {
	return h.save(c, strings.TrimSpace(c.Param("id")), "actualizado")
}

func (h *CustomersHandler) save(c echo.Context, id, flash string) error {
	input := customers.CustomerInput{
		Name:  c.FormValue("nombre"),
		Email: c.FormValue("email"),
		Phone: c.FormValue("telefono"),
	}
	if err := h.uc.Save(c.Request().Context(), tokenFrom(c), id, input); err != nil {
		page := h.newPage(c, id, input)
		page.Error = failureMessage("Error al guardar el cliente", err)
		return c.Render(failureStatus(err), "customers", page)
	}
	return redirectWithFlash(c, "/clientes", flash)
}

func (h *CustomersHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), tokenFrom(c), c.Param("id")); err != nil {
		page := h.newPage(c, "", customers.CustomerInput{})
		page.Error = failureMessage("Error al borrar el cliente", err)
		return c.Render(failureStatus(err), "customers", page)
	}
	return redirectWithFlash(c, "/clientes", "eliminado")
}
