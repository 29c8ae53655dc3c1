package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mesaYaAdmin/internal/modules/admin/application/port"
	customers "mesaYaAdmin/internal/modules/customers/domain"
)

const (
	MsgCustomersLoadFailed = "No se pudieron cargar los clientes"
	MsgCustomersEmpty      = "No hay clientes registrados"
)

// CustomersUseCase drives the customer list and form.
type CustomersUseCase struct {
	gateway port.CustomerGateway
}

func NewCustomersUseCase(gateway port.CustomerGateway) *CustomersUseCase {
	return &CustomersUseCase{gateway: gateway}
}

func (uc *CustomersUseCase) List(ctx context.Context, token string) ListView[customers.Customer] {
	items, err := uc.gateway.ListCustomers(ctx, token)
	if err != nil {
		slog.Warn("customer list fetch failed", slog.Any("error", err))
	}
	return NewListView(items, err, MsgCustomersLoadFailed)
}

// Edit returns the stored values of the selected customer so the form starts
// from server state.
func (uc *CustomersUseCase) Edit(ctx context.Context, token, id string) (customers.CustomerInput, error) {
	items, err := uc.gateway.ListCustomers(ctx, token)
	if err != nil {
		return customers.CustomerInput{}, err
	}
	customer, ok := customers.FindCustomer(items, strings.TrimSpace(id))
	if !ok {
		return customers.CustomerInput{}, fmt.Errorf("cliente %s: %w", id, port.ErrNotFound)
	}
	return customers.InputFromCustomer(customer), nil
}

// Save creates the customer when id is empty and updates it otherwise.
func (uc *CustomersUseCase) Save(ctx context.Context, token, id string, input customers.CustomerInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	input = input.Normalize()
	if id = strings.TrimSpace(id); id == "" {
		if err := uc.gateway.CreateCustomer(ctx, token, input); err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		slog.Info("customer created", slog.String("name", input.Name))
		return nil
	}
	if err := uc.gateway.UpdateCustomer(ctx, token, id, input); err != nil {
		return fmt.Errorf("update customer %s: %w", id, err)
	}
	slog.Info("customer updated", slog.String("id", id))
	return nil
}

func (uc *CustomersUseCase) Delete(ctx context.Context, token, id string) error {
	if err := uc.gateway.DeleteCustomer(ctx, token, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	slog.Info("customer deleted", slog.String("id", id))
	return nil
}
