package normalization

import "testing"

func TestAsInt(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected int
	}{
		{name: "json number", input: float64(7), expected: 7},
		{name: "numeric string", input: " 12 ", expected: 12},
		{name: "invalid string", input: "doce", expected: 0},
		{name: "nil", input: nil, expected: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AsInt(tc.input); got != tc.expected {
				t.Fatalf("AsInt(%v) = %d, expected %d", tc.input, got, tc.expected)
			}
		})
	}
}

func TestAsStringFormatsIdentifiers(t *testing.T) {
	if got := AsString(float64(42)); got != "42" {
		t.Fatalf("expected integral float rendered as 42, got %q", got)
	}
	if got := AsString("  Terraza "); got != "Terraza" {
		t.Fatalf("expected trimmed string, got %q", got)
	}
	if got := AsString(true); got != "" {
		t.Fatalf("expected empty string for bool, got %q", got)
	}
}

func TestItemsFromPayload(t *testing.T) {
	bare := []any{map[string]any{"id": 1.0}}
	if got := ItemsFromPayload(bare); len(got) != 1 {
		t.Fatalf("expected bare array to pass through, got %d items", len(got))
	}

	envelope := map[string]any{"data": []any{1.0, 2.0}}
	if got := ItemsFromPayload(envelope); len(got) != 2 {
		t.Fatalf("expected data envelope to unwrap, got %d items", len(got))
	}

	custom := map[string]any{"reservas": []any{1.0}}
	if got := ItemsFromPayload(custom, "reservas"); len(got) != 1 {
		t.Fatalf("expected custom key to unwrap, got %d items", len(got))
	}

	if got := ItemsFromPayload("nope"); got != nil {
		t.Fatalf("expected nil for scalar payload, got %v", got)
	}
}
