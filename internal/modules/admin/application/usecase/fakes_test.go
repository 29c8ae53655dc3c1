package usecase

import (
	"context"
	"io"
	"sync"

	customers "mesaYaAdmin/internal/modules/customers/domain"
	reports "mesaYaAdmin/internal/modules/reports/domain"
	reservations "mesaYaAdmin/internal/modules/reservations/domain"
	tables "mesaYaAdmin/internal/modules/tables/domain"
)

type fakeCustomerGateway struct {
	mu        sync.Mutex
	customers []customers.Customer
	listErr   error
	saveErr   error
	created   []customers.CustomerInput
	updated   map[string]customers.CustomerInput
	deleted   []string
}

func (f *fakeCustomerGateway) ListCustomers(ctx context.Context, token string) ([]customers.Customer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.customers, nil
}

func (f *fakeCustomerGateway) CreateCustomer(ctx context.Context, token string, input customers.CustomerInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.created = append(f.created, input)
	return nil
}

func (f *fakeCustomerGateway) UpdateCustomer(ctx context.Context, token, id string, input customers.CustomerInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.updated == nil {
		f.updated = map[string]customers.CustomerInput{}
	}
	f.updated[id] = input
	return nil
}

func (f *fakeCustomerGateway) DeleteCustomer(ctx context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTableGateway struct {
	tables    []tables.Table
	available []tables.Table
	listErr   error
	saveErr   error
	availErr  error
	created   []tables.TableInput
	updated   map[string]tables.TableInput
	deleted   []string
	lookups   []string
}

func (f *fakeTableGateway) ListTables(ctx context.Context, token string) ([]tables.Table, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tables, nil
}

func (f *fakeTableGateway) CreateTable(ctx context.Context, token string, input tables.TableInput) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.created = append(f.created, input)
	return nil
}

func (f *fakeTableGateway) UpdateTable(ctx context.Context, token, id string, input tables.TableInput) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.updated == nil {
		f.updated = map[string]tables.TableInput{}
	}
	f.updated[id] = input
	return nil
}

func (f *fakeTableGateway) DeleteTable(ctx context.Context, token, id string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeTableGateway) AvailableTables(ctx context.Context, token, date, time string) ([]tables.Table, error) {
	f.lookups = append(f.lookups, date+" "+time)
	if f.availErr != nil {
		return nil, f.availErr
	}
	return f.available, nil
}

type fakeReservationGateway struct {
	reservations []reservations.Reservation
	listErr      error
	saveErr      error
	created      []reservations.ReservationInput
	cancelled    []string
}

func (f *fakeReservationGateway) ListReservations(ctx context.Context, token string) ([]reservations.Reservation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.reservations, nil
}

func (f *fakeReservationGateway) CreateReservation(ctx context.Context, token string, input reservations.ReservationInput) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.created = append(f.created, input)
	return nil
}

func (f *fakeReservationGateway) CancelReservation(ctx context.Context, token, id string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeReportGateway struct {
	points []reports.OccupancyPoint
	err    error
}

func (f *fakeReportGateway) OccupancyReport(ctx context.Context, token string) ([]reports.OccupancyPoint, error) {
	return f.points, f.err
}

type fakeExporter struct {
	got reports.Chart
}

func (f *fakeExporter) ContentType() string { return "text/plain" }

func (f *fakeExporter) Export(w io.Writer, chart reports.Chart) error {
	f.got = chart
	_, err := io.WriteString(w, chart.Title)
	return err
}
