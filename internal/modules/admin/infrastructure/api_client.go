package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mesaYaAdmin/internal/modules/admin/application/port"
	customers "mesaYaAdmin/internal/modules/customers/domain"
	reports "mesaYaAdmin/internal/modules/reports/domain"
	reservations "mesaYaAdmin/internal/modules/reservations/domain"
	tables "mesaYaAdmin/internal/modules/tables/domain"
)

const (
	customersPath     = "/cliente"
	tablesPath        = "/mesa"
	availabilityPath  = "/mesa/disponibles"
	reservationsPath  = "/reserva"
	occupancyPath     = "/reserva/reportes/ocupacion"
	cancelPathPattern = "/reserva/%s/cancelar"
)

// APIClient implements the admin gateways against the reservation REST API.
type APIClient struct {
	rest *RESTClient
}

func NewAPIClient(baseURL string, timeout time.Duration, client *http.Client) *APIClient {
	return &APIClient{rest: NewRESTClient(baseURL, timeout, client)}
}

func (c *APIClient) ListCustomers(ctx context.Context, token string) ([]customers.Customer, error) {
	payload, err := c.fetch(ctx, token, customersPath, nil)
	if err != nil {
		return nil, err
	}
	list, ok := customers.BuildCustomerList(payload)
	if !ok {
		return nil, fmt.Errorf("decode customers: %w", port.ErrUpstream)
	}
	return list, nil
}

func (c *APIClient) CreateCustomer(ctx context.Context, token string, input customers.CustomerInput) error {
	return c.send(ctx, token, http.MethodPost, customersPath, input.Payload())
}

func (c *APIClient) UpdateCustomer(ctx context.Context, token, id string, input customers.CustomerInput) error {
	return c.send(ctx, token, http.MethodPatch, resourcePath(customersPath, id), input.Payload())
}

func (c *APIClient) DeleteCustomer(ctx context.Context, token, id string) error {
	return c.send(ctx, token, http.MethodDelete, resourcePath(customersPath, id), nil)
}

func (c *APIClient) ListTables(ctx context.Context, token string) ([]tables.Table, error) {
	return c.fetchTables(ctx, token, tablesPath, nil)
}

func (c *APIClient) CreateTable(ctx context.Context, token string, input tables.TableInput) error {
	return c.send(ctx, token, http.MethodPost, tablesPath, input.Payload())
}

func (c *APIClient) UpdateTable(ctx context.Context, token, id string, input tables.TableInput) error {
	return c.send(ctx, token, http.MethodPatch, resourcePath(tablesPath, id), input.Payload())
}

func (c *APIClient) DeleteTable(ctx context.Context, token, id string) error {
	return c.send(ctx, token, http.MethodDelete, resourcePath(tablesPath, id), nil)
}

func (c *APIClient) AvailableTables(ctx context.Context, token, date, hour string) ([]tables.Table, error) {
	query := url.Values{}
	query.Set("fecha", date)
	query.Set("hora", hour)
	return c.fetchTables(ctx, token, availabilityPath, query)
}

func (c *APIClient) fetchTables(ctx context.Context, token, endpoint string, query url.Values) ([]tables.Table, error) {
	payload, err := c.fetch(ctx, token, endpoint, query)
	if err != nil {
		return nil, err
	}
	list, ok := tables.BuildTableList(payload)
	if !ok {
		return nil, fmt.Errorf("decode tables: %w", port.ErrUpstream)
	}
	return list, nil
}

func (c *APIClient) ListReservations(ctx context.Context, token string) ([]reservations.Reservation, error) {
	payload, err := c.fetch(ctx, token, reservationsPath, nil)
	if err != nil {
		return nil, err
	}
	list, ok := reservations.BuildReservationList(payload)
	if !ok {
		return nil, fmt.Errorf("decode reservations: %w", port.ErrUpstream)
	}
	return list, nil
}

func (c *APIClient) CreateReservation(ctx context.Context, token string, input reservations.ReservationInput) error {
	return c.send(ctx, token, http.MethodPost, reservationsPath, input.Payload())
}

func (c *APIClient) CancelReservation(ctx context.Context, token, id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return port.ErrNotFound
	}
	return c.send(ctx, token, http.MethodPatch, fmt.Sprintf(cancelPathPattern, url.PathEscape(trimmed)), nil)
}

func (c *APIClient) OccupancyReport(ctx context.Context, token string) ([]reports.OccupancyPoint, error) {
	payload, err := c.fetch(ctx, token, occupancyPath, nil)
	if err != nil {
		return nil, err
	}
	points, ok := reports.BuildOccupancyPoints(payload)
	if !ok {
		return nil, fmt.Errorf("decode occupancy: %w", port.ErrUpstream)
	}
	return points, nil
}

func (c *APIClient) fetch(ctx context.Context, token, endpoint string, query url.Values) (any, error) {
	req, err := c.newRequest(ctx, token, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	slog.Debug("api request", slog.String("method", req.Method), slog.String("url", req.URL.String()))

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("api request error", slog.String("path", endpoint), slog.Any("error", err))
		return nil, fmt.Errorf("api request failed: %w", err)
	}
	defer res.Body.Close()
	slog.Debug("api response", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, decodeAPIError(res)
	}

	var payload any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return payload, nil
}

// send issues a mutation; the response body is drained and ignored because
// every view re-fetches after a successful change.
func (c *APIClient) send(ctx context.Context, token, method, endpoint string, body any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, token, method, endpoint, reader)
	if err != nil {
		return err
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	slog.Debug("api request", slog.String("method", method), slog.String("url", req.URL.String()))

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("api request error", slog.String("method", method), slog.String("path", endpoint), slog.Any("error", err))
		return fmt.Errorf("api request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return decodeAPIError(res)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

func (c *APIClient) newRequest(ctx context.Context, token, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := c.rest.NewRequest(ctx, method, endpoint, body)
	if err != nil {
		slog.Error("api request build failed", slog.String("path", endpoint), slog.Any("error", err))
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if trimmed := strings.TrimSpace(token); trimmed != "" {
		req.Header.Set("Authorization", "Bearer "+trimmed)
	}
	return req, nil
}

func resourcePath(base, id string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(strings.TrimSpace(id))
}

var (
	_ port.CustomerGateway    = (*APIClient)(nil)
	_ port.TableGateway       = (*APIClient)(nil)
	_ port.ReservationGateway = (*APIClient)(nil)
	_ port.ReportGateway      = (*APIClient)(nil)
)
