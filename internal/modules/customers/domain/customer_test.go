package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildCustomerList(t *testing.T) {
	payload := []any{
		map[string]any{"id": float64(1), "nombre": "Ana", "email": "ana@example.com", "telefono": "555-1", "puntos": float64(20)},
		map[string]any{"nombre": "sin id"},
		map[string]any{"id": "2", "nombre": " Luis ", "telefono": "555-2", "puntos": "5"},
	}

	got, ok := BuildCustomerList(payload)
	if !ok {
		t.Fatal("expected customer list")
	}
	want := []Customer{
		{ID: "1", Name: "Ana", Email: "ana@example.com", Phone: "555-1", Points: 20},
		{ID: "2", Name: "Luis", Phone: "555-2", Points: 5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected customers (-want +got):\n%s", diff)
	}
}

func TestBuildCustomerListEmptyAndInvalid(t *testing.T) {
	got, ok := BuildCustomerList(map[string]any{"data": []any{}})
	if !ok || len(got) != 0 {
		t.Fatalf("expected empty valid list, got %v ok=%v", got, ok)
	}
	if _, ok := BuildCustomerList("oops"); ok {
		t.Fatal("expected invalid payload to be rejected")
	}
}

func TestCustomerInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   CustomerInput
		wantErr []error
	}{
		{name: "valid without email", input: CustomerInput{Name: "Ana", Phone: "555"}},
		{name: "missing name", input: CustomerInput{Phone: "555"}, wantErr: []error{ErrNameRequired}},
		{name: "blank fields", input: CustomerInput{Name: "  ", Email: "a@b.c", Phone: " "}, wantErr: []error{ErrNameRequired, ErrPhoneRequired}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Fatalf("expected %v in %v", want, err)
				}
			}
		})
	}
}

func TestCustomerInputPayloadAndLabel(t *testing.T) {
	payload := CustomerInput{Name: " Ana ", Email: "", Phone: "555"}.Payload()
	want := map[string]any{"nombre": "Ana", "email": "", "telefono": "555"}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("unexpected payload (-want +got):\n%s", diff)
	}
	if label := (Customer{Name: "Ana", Phone: "555"}).Label(); label != "Ana (Tel: 555)" {
		t.Fatalf("unexpected label %q", label)
	}
}
