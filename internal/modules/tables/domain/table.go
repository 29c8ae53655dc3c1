package domain

import (
	"errors"
	"strings"

	"mesaYaAdmin/internal/shared/normalization"
)

var (
	ErrNumberInvalid   = errors.New("el número de mesa debe ser un entero positivo")
	ErrCapacityInvalid = errors.New("la capacidad debe ser un entero positivo")
)

// Table represents a seating resource of the restaurant.
type Table struct {
	ID       string
	Number   int
	Capacity int
	Location string
}

// NormalizeTable attempts to construct a Table from an arbitrary map payload.
func NormalizeTable(raw map[string]any) (Table, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Table{}, false
	}
	return Table{
		ID:       id,
		Number:   normalization.AsInt(raw["numero_mesa"]),
		Capacity: normalization.AsInt(raw["capacidad"]),
		Location: normalization.AsString(raw["ubicacion"]),
	}, true
}

// BuildTableList projects a collection payload into tables. The boolean is false
// only when the payload is not a collection.
func BuildTableList(payload any) ([]Table, bool) {
	rawItems := normalization.ItemsFromPayload(payload, "mesas")
	if rawItems == nil {
		return nil, false
	}
	tables := make([]Table, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if table, ok := NormalizeTable(rawMap); ok {
				tables = append(tables, table)
			}
		}
	}
	return tables, true
}

// FindTable returns the table with the given id.
func FindTable(tables []Table, id string) (Table, bool) {
	for _, table := range tables {
		if table.ID == id {
			return table, true
		}
	}
	return Table{}, false
}

// TableInput keeps the raw form values so a failed submission can be re-rendered
// exactly as typed.
type TableInput struct {
	Number   string
	Capacity string
	Location string
}

func InputFromTable(t Table) TableInput {
	return TableInput{
		Number:   normalization.AsString(t.Number),
		Capacity: normalization.AsString(t.Capacity),
		Location: t.Location,
	}
}

// Validate checks that number and capacity are positive integers.
func (in TableInput) Validate() error {
	var errs []error
	if n, ok := normalization.ParseInt(in.Number); !ok || n <= 0 {
		errs = append(errs, ErrNumberInvalid)
	}
	if c, ok := normalization.ParseInt(in.Capacity); !ok || c <= 0 {
		errs = append(errs, ErrCapacityInvalid)
	}
	return errors.Join(errs...)
}

// Payload is the request body accepted by the table endpoints. Numbers travel
// as JSON numbers. Call Validate first.
func (in TableInput) Payload() map[string]any {
	number, _ := normalization.ParseInt(in.Number)
	capacity, _ := normalization.ParseInt(in.Capacity)
	return map[string]any{
		"numero_mesa": number,
		"capacidad":   capacity,
		"ubicacion":   strings.TrimSpace(in.Location),
	}
}
