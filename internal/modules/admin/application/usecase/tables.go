package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mesaYaAdmin/internal/modules/admin/application/port"
	tables "mesaYaAdmin/internal/modules/tables/domain"
)

const (
	MsgTablesLoadFailed = "No se pudieron cargar las mesas"
	MsgTablesEmpty      = "No hay mesas creadas"
)

// TablesUseCase drives the table list and form.
type TablesUseCase struct {
	gateway port.TableGateway
}

func NewTablesUseCase(gateway port.TableGateway) *TablesUseCase {
	return &TablesUseCase{gateway: gateway}
}

func (uc *TablesUseCase) List(ctx context.Context, token string) ListView[tables.Table] {
	items, err := uc.gateway.ListTables(ctx, token)
	if err != nil {
		slog.Warn("table list fetch failed", slog.Any("error", err))
	}
	return NewListView(items, err, MsgTablesLoadFailed)
}

func (uc *TablesUseCase) Edit(ctx context.Context, token, id string) (tables.TableInput, error) {
	items, err := uc.gateway.ListTables(ctx, token)
	if err != nil {
		return tables.TableInput{}, err
	}
	table, ok := tables.FindTable(items, strings.TrimSpace(id))
	if !ok {
		return tables.TableInput{}, fmt.Errorf("mesa %s: %w", id, port.ErrNotFound)
	}
	return tables.InputFromTable(table), nil
}

// Save creates the table when id is empty and updates it otherwise.
func (uc *TablesUseCase) Save(ctx context.Context, token, id string, input tables.TableInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if id = strings.TrimSpace(id); id == "" {
		if err := uc.gateway.CreateTable(ctx, token, input); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
		slog.Info("table created", slog.String("number", input.Number))
		return nil
	}
	if err := uc.gateway.UpdateTable(ctx, token, id, input); err != nil {
		return fmt.Errorf("update table %s: %w", id, err)
	}
	slog.Info("table updated", slog.String("id", id))
	return nil
}

func (uc *TablesUseCase) Delete(ctx context.Context, token, id string) error {
	if err := uc.gateway.DeleteTable(ctx, token, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete table %s: %w", id, err)
	}
	slog.Info("table deleted", slog.String("id", id))
	return nil
}
