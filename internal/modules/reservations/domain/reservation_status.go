package domain

import "strings"

// ReservationStatus represents the lifecycle of a reservation as exposed by the REST API.
type ReservationStatus string

const (
	ReservationStatusUnknown   ReservationStatus = ""
	ReservationStatusPending   ReservationStatus = "pendiente"
	ReservationStatusConfirmed ReservationStatus = "confirmada"
	ReservationStatusCancelled ReservationStatus = "cancelada"
	ReservationStatusCompleted ReservationStatus = "completada"
)

var allowedReservationStatuses = map[string]ReservationStatus{
	string(ReservationStatusPending):   ReservationStatusPending,
	string(ReservationStatusConfirmed): ReservationStatusConfirmed,
	string(ReservationStatusCancelled): ReservationStatusCancelled,
	string(ReservationStatusCompleted): ReservationStatusCompleted,
}

// NormalizeReservationStatus returns the canonical ReservationStatus for the given input.
// Unknown statuses are lowercased and returned as-is to avoid data loss.
func NormalizeReservationStatus(value any) ReservationStatus {
	s, ok := value.(string)
	if !ok {
		return ReservationStatusUnknown
	}
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return ReservationStatusUnknown
	}
	if status, ok := allowedReservationStatuses[trimmed]; ok {
		return status
	}
	return ReservationStatus(trimmed)
}

// Label is the capitalized status shown in the list.
func (s ReservationStatus) Label() string {
	if s == ReservationStatusUnknown {
		return "Desconocido"
	}
	runes := []rune(string(s))
	return strings.ToUpper(string(runes[:1])) + string(runes[1:])
}
