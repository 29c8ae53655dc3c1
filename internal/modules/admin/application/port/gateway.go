package port

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	customers "mesaYaAdmin/internal/modules/customers/domain"
	reports "mesaYaAdmin/internal/modules/reports/domain"
	reservations "mesaYaAdmin/internal/modules/reservations/domain"
	tables "mesaYaAdmin/internal/modules/tables/domain"
)

var (
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("access forbidden")
	ErrValidation = errors.New("request rejected")
	ErrUpstream   = errors.New("upstream api failure")
)

// APIError is a non-2xx answer of the reservation API. Kind is one of the
// sentinel errors above so callers can use errors.Is.
type APIError struct {
	Status  int
	Message string
	Kind    error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api status %d", e.Status)
}

func (e *APIError) Unwrap() error { return e.Kind }

// ErrorMessage returns the text shown to the operator: the message reported by
// the API when there is one, else the error itself.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return err.Error()
}

type CustomerGateway interface {
	ListCustomers(ctx context.Context, token string) ([]customers.Customer, error)
	CreateCustomer(ctx context.Context, token string, input customers.CustomerInput) error
	UpdateCustomer(ctx context.Context, token, id string, input customers.CustomerInput) error
	DeleteCustomer(ctx context.Context, token, id string) error
}

type TableGateway interface {
	ListTables(ctx context.Context, token string) ([]tables.Table, error)
	CreateTable(ctx context.Context, token string, input tables.TableInput) error
	UpdateTable(ctx context.Context, token, id string, input tables.TableInput) error
	DeleteTable(ctx context.Context, token, id string) error
	// AvailableTables lists the tables free at the given date and time.
	AvailableTables(ctx context.Context, token, date, time string) ([]tables.Table, error)
}

type ReservationGateway interface {
	ListReservations(ctx context.Context, token string) ([]reservations.Reservation, error)
	CreateReservation(ctx context.Context, token string, input reservations.ReservationInput) error
	CancelReservation(ctx context.Context, token, id string) error
}

type ReportGateway interface {
	OccupancyReport(ctx context.Context, token string) ([]reports.OccupancyPoint, error)
}

// ReportExporter renders a chart into a downloadable document.
type ReportExporter interface {
	ContentType() string
	Export(w io.Writer, chart reports.Chart) error
}
