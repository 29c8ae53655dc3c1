package normalization

import "testing"

func TestNormalizeEntity(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"cliente":        "clientes",
		" Clientes ":     "clientes",
		"customer":       "clientes",
		" Customers ":    "clientes",
		"mesa":           "mesas",
		"tables":         "mesas",
		"TABLES":         "mesas",
		"Reserva":        "reservas",
		"reservation":    "reservas",
		"reservations":   "reservas",
		"custom_entity":  "custom-entity",
		"section-object": "section-object",
	}
	for input, expected := range cases {
		if actual := NormalizeEntity(input); actual != expected {
			t.Fatalf("NormalizeEntity(%q) expected %q got %q", input, expected, actual)
		}
	}
}

func TestIsValidEntity(t *testing.T) {
	for _, entity := range []string{"clientes", "mesa", "reservation"} {
		if !IsValidEntity(entity) {
			t.Fatalf("expected %q to be valid", entity)
		}
	}
	for _, entity := range []string{"", "menus", "system"} {
		if IsValidEntity(entity) {
			t.Fatalf("expected %q to be invalid", entity)
		}
	}
}
