package domain

import (
	"strings"

	"mesaYaAdmin/internal/shared/normalization"
)

// AvailabilityQuery is the reservation form state that drives the table picker.
type AvailabilityQuery struct {
	Date      string `json:"fecha"`
	Time      string `json:"hora"`
	PartySize string `json:"personas"`
}

// Ready reports whether both date and time are selected; no lookup is issued
// before that.
func (q AvailabilityQuery) Ready() bool {
	return strings.TrimSpace(q.Date) != "" && strings.TrimSpace(q.Time) != ""
}

// ParsePartySize returns the party size, or 0 when the field is empty or not a
// number, meaning no capacity filter applies.
func ParsePartySize(raw string) int {
	size, ok := normalization.ParseInt(raw)
	if !ok || size < 0 {
		return 0
	}
	return size
}

// FilterByCapacity keeps the tables that seat at least partySize guests. A
// non-positive party size disables the filter.
func FilterByCapacity(tables []Table, partySize int) []Table {
	if partySize <= 0 {
		return tables
	}
	filtered := make([]Table, 0, len(tables))
	for _, table := range tables {
		if table.Capacity >= partySize {
			filtered = append(filtered, table)
		}
	}
	return filtered
}
