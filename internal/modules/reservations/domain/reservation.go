package domain

import (
	"errors"
	"strings"

	customers "mesaYaAdmin/internal/modules/customers/domain"
	tables "mesaYaAdmin/internal/modules/tables/domain"
	"mesaYaAdmin/internal/shared/normalization"
)

var (
	ErrSelectionRequired = errors.New("Debe seleccionar un cliente y una mesa.")
	ErrScheduleRequired  = errors.New("Debe indicar fecha y hora.")
	ErrPartySizeInvalid  = errors.New("El número de personas debe ser un entero positivo.")
)

// Reservation is a booking with the customer and table snapshots embedded by
// the API at fetch time.
type Reservation struct {
	ID        string
	Date      string
	Time      string
	PartySize int
	Status    ReservationStatus
	Customer  customers.Customer
	Table     tables.Table
}

// Active reports whether the reservation still holds its table.
func (r Reservation) Active() bool {
	return r.Status != ReservationStatusCancelled
}

// NormalizeReservation constructs a Reservation from a loosely typed map.
func NormalizeReservation(raw map[string]any) (Reservation, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Reservation{}, false
	}

	reservation := Reservation{
		ID:        id,
		Date:      normalizeDate(normalization.AsString(raw["fecha"])),
		Time:      normalization.AsString(raw["hora"]),
		PartySize: normalization.AsInt(raw["numero_personas"]),
		Status:    NormalizeReservationStatus(raw["estado"]),
	}
	if customer, ok := raw["cliente"].(map[string]any); ok {
		reservation.Customer, _ = customers.NormalizeCustomer(customer)
	}
	if table, ok := raw["mesa"].(map[string]any); ok {
		reservation.Table, _ = tables.NormalizeTable(table)
	}
	return reservation, true
}

// normalizeDate drops the time part of ISO timestamps returned for DATE columns.
func normalizeDate(value string) string {
	if idx := strings.IndexByte(value, 'T'); idx == len("2006-01-02") {
		return value[:idx]
	}
	return value
}

// BuildReservationList projects a collection payload into reservations.
func BuildReservationList(payload any) ([]Reservation, bool) {
	rawItems := normalization.ItemsFromPayload(payload, "reservas")
	if rawItems == nil {
		return nil, false
	}
	reservations := make([]Reservation, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if reservation, ok := NormalizeReservation(rawMap); ok {
				reservations = append(reservations, reservation)
			}
		}
	}
	return reservations, true
}

// ActiveReservations filters out cancelled reservations, preserving order.
func ActiveReservations(reservations []Reservation) []Reservation {
	active := make([]Reservation, 0, len(reservations))
	for _, reservation := range reservations {
		if reservation.Active() {
			active = append(active, reservation)
		}
	}
	return active
}

// ReservationInput holds the raw values of the reservation form.
type ReservationInput struct {
	CustomerID string
	TableID    string
	Date       string
	Time       string
	PartySize  string
}

// Query returns the availability lookup derived from the form.
func (in ReservationInput) Query() tables.AvailabilityQuery {
	return tables.AvailabilityQuery{Date: in.Date, Time: in.Time, PartySize: in.PartySize}
}

// Validate requires a customer and a table before anything else.
func (in ReservationInput) Validate() error {
	if strings.TrimSpace(in.CustomerID) == "" || strings.TrimSpace(in.TableID) == "" {
		return ErrSelectionRequired
	}
	if !in.Query().Ready() {
		return ErrScheduleRequired
	}
	if size, ok := normalization.ParseInt(in.PartySize); !ok || size <= 0 {
		return ErrPartySizeInvalid
	}
	return nil
}

// Payload is the body accepted by POST /reserva. Ids are sent as numbers when
// they are numeric.
func (in ReservationInput) Payload() map[string]any {
	size, _ := normalization.ParseInt(in.PartySize)
	return map[string]any{
		"fecha":           strings.TrimSpace(in.Date),
		"hora":            strings.TrimSpace(in.Time),
		"numero_personas": size,
		"clienteId":       identifier(in.CustomerID),
		"mesaId":          identifier(in.TableID),
	}
}

func identifier(raw string) any {
	if id, ok := normalization.ParseInt(raw); ok {
		return id
	}
	return strings.TrimSpace(raw)
}
