package normalization

import "strings"

const (
	EntityCustomers    = "clientes"
	EntityTables       = "mesas"
	EntityReservations = "reservas"
)

// entityAliases maps the names used by the REST API, the event stream and older
// english payloads to the canonical entity names used across the admin.
var entityAliases = map[string]string{
	"cliente":   EntityCustomers,
	"clientes":  EntityCustomers,
	"customer":  EntityCustomers,
	"customers": EntityCustomers,

	"mesa":   EntityTables,
	"mesas":  EntityTables,
	"table":  EntityTables,
	"tables": EntityTables,

	"reserva":      EntityReservations,
	"reservas":     EntityReservations,
	"reservation":  EntityReservations,
	"reservations": EntityReservations,
}

// NormalizeEntity converts singular, plural and english aliases to the canonical
// entity name. Unknown names are returned lowercased with underscores as hyphens.
//
// Example:
//
//	NormalizeEntity("Reserva") => "reservas"
//	NormalizeEntity("tables") => "mesas"
func NormalizeEntity(raw string) string {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	if canonical, ok := entityAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// IsValidEntity reports whether raw resolves to one of the administered entities.
func IsValidEntity(raw string) bool {
	switch NormalizeEntity(raw) {
	case EntityCustomers, EntityTables, EntityReservations:
		return true
	default:
		return false
	}
}
