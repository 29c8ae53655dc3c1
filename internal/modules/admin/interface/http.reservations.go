package transport

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"mesaYaAdmin/internal/modules/admin/application/usecase"
	customers "mesaYaAdmin/internal/modules/customers/domain"
	reservations "mesaYaAdmin/internal/modules/reservations/domain"
	tables "mesaYaAdmin/internal/modules/tables/domain"
)

type reservationForm struct {
	CustomerID string
	TableID    string
	Date       string
	Time       string
	PartySize  string
}

func (f reservationForm) input() reservations.ReservationInput {
	return reservations.ReservationInput{
		CustomerID: f.CustomerID,
		TableID:    f.TableID,
		Date:       f.Date,
		Time:       f.Time,
		PartySize:  f.PartySize,
	}
}

func reservationFormFrom(c echo.Context) reservationForm {
	return reservationForm{
		CustomerID: strings.TrimSpace(c.FormValue("clienteId")),
		TableID:    strings.TrimSpace(c.FormValue("mesaId")),
		Date:       strings.TrimSpace(c.FormValue("fecha")),
		Time:       strings.TrimSpace(c.FormValue("hora")),
		PartySize:  strings.TrimSpace(c.FormValue("personas")),
	}
}

func (f reservationForm) empty() bool {
	return f == reservationForm{}
}

type reservationBoard struct {
	Form              reservationForm
	Customers         []customers.Customer
	Tables            []tables.Table
	PickerEnabled     bool
	PickerPlaceholder string
	AvailabilityError string
	LoadError         string
	List              usecase.ListView[reservations.Reservation]
}

// activeReservations is the refreshable part of the board.
type activeReservations struct {
	LoadError string
	List      usecase.ListView[reservations.Reservation]
}

type reservationsPage struct {
	Page
	Board *reservationBoard
}

// ReservationsHandler serves the reservation view. The board (form and active
// list) is loaded as a fragment unless the request carries form state, in which
// case it is embedded so the page works without script.
type ReservationsHandler struct {
	uc *usecase.ReservationsUseCase
}

func NewReservationsHandler(uc *usecase.ReservationsUseCase) *ReservationsHandler {
	return &ReservationsHandler{uc: uc}
}

func (h *ReservationsHandler) Register(g *echo.Group) {
	g.GET("/", h.Page)
	g.GET("/reservas", h.Page)
	g.GET("/reservas/lista", h.Board)
	g.GET("/reservas/activas", h.Active)
	g.POST("/reservas", h.Create)
	g.POST("/reservas/:id/cancelar", h.Cancel)
}

func (h *ReservationsHandler) Page(c echo.Context) error {
	page := reservationsPage{Page: newPage(c, "Reservas", "reservas")}
	if form := reservationFormFrom(c); !form.empty() {
		page.Board = h.board(c, form)
	}
	return c.Render(http.StatusOK, "reservations", page)
}

func (h *ReservationsHandler) Board(c echo.Context) error {
	return c.Render(http.StatusOK, "reservations/board", h.board(c, reservationFormFrom(c)))
}

func (h *ReservationsHandler) Active(c echo.Context) error {
	list := h.uc.Active(c.Request().Context(), tokenFrom(c))
	view := activeReservations{List: list}
	if list.Failed() {
		view.LoadError = list.Error
	}
	return c.Render(http.StatusOK, "reservations/active", view)
}

func (h *ReservationsHandler) board(c echo.Context, form reservationForm) *reservationBoard {
	ctx := c.Request().Context()
	token := tokenFrom(c)

	loaded := h.uc.Load(ctx, token)
	board := &reservationBoard{
		Form:              form,
		Customers:         loaded.Customers,
		List:              loaded.Reservations,
		PickerPlaceholder: usecase.MsgTablePickerWaiting,
	}
	if loaded.Reservations.Failed() {
		board.LoadError = loaded.Reservations.Error
	}

	query := form.input().Query()
	if !query.Ready() {
		return board
	}
	board.PickerEnabled = true
	board.PickerPlaceholder = usecase.MsgTablePickerPlaceholder
	available, err := h.uc.Availability(ctx, token, query)
	if err != nil {
		board.AvailabilityError = usecase.MsgAvailabilityFailed
		return board
	}
	board.Tables = available
	return board
}

func (h *ReservationsHandler) Create(c echo.Context) error {
	form := reservationFormFrom(c)
	if err := h.uc.Create(c.Request().Context(), tokenFrom(c), form.input()); err != nil {
		page := reservationsPage{Page: newPage(c, "Reservas", "reservas"), Board: h.board(c, form)}
		page.Error = reservationFailure(err)
		return c.Render(failureStatus(err), "reservations", page)
	}
	return redirectWithFlash(c, "/reservas", "creado")
}

func (h *ReservationsHandler) Cancel(c echo.Context) error {
	if err := h.uc.Cancel(c.Request().Context(), tokenFrom(c), c.Param("id")); err != nil {
		page := reservationsPage{Page: newPage(c, "Reservas", "reservas"), Board: h.board(c, reservationForm{})}
		page.Error = failureMessage("Error al cancelar", err)
		return c.Render(failureStatus(err), "reservations", page)
	}
	return redirectWithFlash(c, "/reservas", "cancelado")
}

// reservationFailure shows form validation messages as they are and prefixes
// errors reported by the API.
func reservationFailure(err error) string {
	switch {
	case errors.Is(err, reservations.ErrSelectionRequired),
		errors.Is(err, reservations.ErrScheduleRequired),
		errors.Is(err, reservations.ErrPartySizeInvalid):
		return err.Error()
	default:
		return failureMessage("Error al crear la reserva", err)
	}
}
