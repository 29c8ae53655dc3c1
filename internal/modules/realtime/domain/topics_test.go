package domain

import "testing"

func TestTopicBuilders(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{name: "changed", got: ChangedTopic("clientes"), want: "clientes.changed"},
		{name: "error", got: ErrorTopic(" mesas "), want: "mesas.error"},
		{name: "custom", got: CustomTopic("reservas", "cancelled"), want: "reservas.cancelled"},
		{name: "empty entity", got: ChangedTopic("  "), want: ""},
		{name: "empty action", got: CustomTopic("mesas", ""), want: ""},
		{name: "availability", got: TopicAvailability, want: "mesas.disponibles"},
		{name: "availability error", got: TopicAvailabilityError, want: "mesas.error"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, tc.got)
		}
	}
}
