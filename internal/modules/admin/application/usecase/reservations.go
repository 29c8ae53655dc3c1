package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"mesaYaAdmin/internal/modules/admin/application/port"
	customers "mesaYaAdmin/internal/modules/customers/domain"
	reservations "mesaYaAdmin/internal/modules/reservations/domain"
	tables "mesaYaAdmin/internal/modules/tables/domain"
)

const (
	MsgInitialLoadFailed      = "No se pudieron cargar los datos iniciales"
	MsgReservationsEmpty      = "No hay reservas activas"
	MsgAvailabilityFailed     = "No se pudo consultar la disponibilidad"
	MsgTablePickerWaiting     = "Primero elija fecha y hora..."
	MsgTablePickerPlaceholder = "Seleccione una mesa disponible..."
)

// ReservationBoard is the data behind the reservation view: the active
// reservations and the customers offered by the form.
type ReservationBoard struct {
	Reservations ListView[reservations.Reservation]
	Customers    []customers.Customer
}

// ReservationsUseCase holds the only cross-entity logic of the admin.
type ReservationsUseCase struct {
	reservations port.ReservationGateway
	customers    port.CustomerGateway
	tables       port.TableGateway
}

func NewReservationsUseCase(reservationGateway port.ReservationGateway, customerGateway port.CustomerGateway, tableGateway port.TableGateway) *ReservationsUseCase {
	return &ReservationsUseCase{
		reservations: reservationGateway,
		customers:    customerGateway,
		tables:       tableGateway,
	}
}

// Load fetches reservations and customers concurrently; the view is ready only
// when both succeed. Cancelled reservations are dropped before the emptiness
// check.
func (uc *ReservationsUseCase) Load(ctx context.Context, token string) ReservationBoard {
	var (
		reservationList []reservations.Reservation
		customerList    []customers.Customer
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		items, err := uc.reservations.ListReservations(groupCtx, token)
		if err != nil {
			return fmt.Errorf("list reservations: %w", err)
		}
		reservationList = items
		return nil
	})
	group.Go(func() error {
		items, err := uc.customers.ListCustomers(groupCtx, token)
		if err != nil {
			return fmt.Errorf("list customers: %w", err)
		}
		customerList = items
		return nil
	})

	if err := group.Wait(); err != nil {
		slog.Warn("reservation board load failed", slog.Any("error", err))
		return ReservationBoard{Reservations: NewListView[reservations.Reservation](nil, err, MsgInitialLoadFailed)}
	}

	active := reservations.ActiveReservations(reservationList)
	return ReservationBoard{
		Reservations: NewListView(active, nil, ""),
		Customers:    customerList,
	}
}

// Active lists the reservations that are not cancelled. It backs the live
// refresh of the list, which leaves the form untouched.
func (uc *ReservationsUseCase) Active(ctx context.Context, token string) ListView[reservations.Reservation] {
	items, err := uc.reservations.ListReservations(ctx, token)
	if err != nil {
		slog.Warn("active reservations load failed", slog.Any("error", err))
		return NewListView[reservations.Reservation](nil, fmt.Errorf("list reservations: %w", err), MsgInitialLoadFailed)
	}
	return NewListView(reservations.ActiveReservations(items), nil, "")
}

// Customers lists the customers for the reservation form.
func (uc *ReservationsUseCase) Customers(ctx context.Context, token string) ([]customers.Customer, error) {
	return uc.customers.ListCustomers(ctx, token)
}

// Availability returns the tables free at the query's date and time that seat
// the party. Nothing is fetched until date and time are both set.
func (uc *ReservationsUseCase) Availability(ctx context.Context, token string, query tables.AvailabilityQuery) ([]tables.Table, error) {
	if !query.Ready() {
		return nil, nil
	}
	available, err := uc.tables.AvailableTables(ctx, token, strings.TrimSpace(query.Date), strings.TrimSpace(query.Time))
	if err != nil {
		return nil, fmt.Errorf("available tables: %w", err)
	}
	return tables.FilterByCapacity(available, tables.ParsePartySize(query.PartySize)), nil
}

func (uc *ReservationsUseCase) Create(ctx context.Context, token string, input reservations.ReservationInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if err := uc.reservations.CreateReservation(ctx, token, input); err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	slog.Info("reservation created",
		slog.String("customerId", input.CustomerID),
		slog.String("tableId", input.TableID),
		slog.String("date", input.Date),
		slog.String("time", input.Time),
	)
	return nil
}

// Cancel changes the remote status; the reservation is never deleted.
func (uc *ReservationsUseCase) Cancel(ctx context.Context, token, id string) error {
	if err := uc.reservations.CancelReservation(ctx, token, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("cancel reservation %s: %w", id, err)
	}
	slog.Info("reservation cancelled", slog.String("id", id))
	return nil
}
