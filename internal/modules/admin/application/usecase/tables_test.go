package usecase

import (
	"context"
	"errors"
	"testing"

	"mesaYaAdmin/internal/modules/admin/application/port"
	tables "mesaYaAdmin/internal/modules/tables/domain"
)

func TestTablesUseCaseSave(t *testing.T) {
	gateway := &fakeTableGateway{}
	uc := NewTablesUseCase(gateway)
	ctx := context.Background()

	if err := uc.Save(ctx, "", "", tables.TableInput{Number: "4", Capacity: "2", Location: "Terraza"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Save(ctx, "", "9", tables.TableInput{Number: "4", Capacity: "6"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gateway.created) != 1 || gateway.updated["9"].Capacity != "6" {
		t.Fatalf("unexpected gateway calls: created=%+v updated=%+v", gateway.created, gateway.updated)
	}

	if err := uc.Save(ctx, "", "", tables.TableInput{Number: "x", Capacity: "2"}); !errors.Is(err, tables.ErrNumberInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTablesUseCaseListAndEdit(t *testing.T) {
	gateway := &fakeTableGateway{tables: []tables.Table{{ID: "1", Number: 5, Capacity: 4, Location: "Salón"}}}
	uc := NewTablesUseCase(gateway)

	if view := uc.List(context.Background(), ""); !view.Ready() {
		t.Fatalf("expected ready list, got %s", view.State)
	}
	input, err := uc.Edit(context.Background(), "", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Number != "5" || input.Capacity != "4" || input.Location != "Salón" {
		t.Fatalf("unexpected form values: %+v", input)
	}
	if _, err := uc.Edit(context.Background(), "", "2"); !errors.Is(err, port.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	failing := NewTablesUseCase(&fakeTableGateway{listErr: errors.New("down")})
	if view := failing.List(context.Background(), ""); view.Error != MsgTablesLoadFailed {
		t.Fatalf("unexpected error message %q", view.Error)
	}
}

func TestTablesUseCaseDelete(t *testing.T) {
	gateway := &fakeTableGateway{}
	if err := NewTablesUseCase(gateway).Delete(context.Background(), "", " 3 "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gateway.deleted) != 1 || gateway.deleted[0] != "3" {
		t.Fatalf("unexpected deletes: %v", gateway.deleted)
	}
}
