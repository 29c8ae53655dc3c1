package normalization

import (
	"math"
	"strconv"
	"strings"
)

// AsString trims and returns the string representation of value when possible.
// Numeric identifiers are rendered without a fractional part.
func AsString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == math.Trunc(typed) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return ""
	}
}

// AsInt coerces numeric values supported by the REST layer into Go ints.
// Numeric strings are accepted because SQL aggregates travel as text.
func AsInt(value any) int {
	switch typed := value.(type) {
	case float64:
		return int(typed)
	case float32:
		return int(typed)
	case int:
		return typed
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	case string:
		parsed, _ := ParseInt(typed)
		return parsed
	default:
		return 0
	}
}

// ParseInt parses a trimmed base-10 integer, reporting whether it succeeded.
func ParseInt(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// AsInterfaceSlice normalizes different collection types into a []any.
func AsInterfaceSlice(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		items := make([]any, 0, len(typed))
		for _, entry := range typed {
			items = append(items, entry)
		}
		return items
	default:
		return nil
	}
}

// MapFromPayload attempts to unwrap common envelope structures (e.g. {"data": {...}})
// into a plain map for normalization routines.
func MapFromPayload(value any) map[string]any {
	if value == nil {
		return nil
	}
	if typed, ok := value.(map[string]any); ok {
		if data, ok := typed["data"].(map[string]any); ok {
			return data
		}
		return typed
	}
	return nil
}

// ItemsFromPayload returns the collection carried by payload. A bare JSON array is
// returned as is; envelopes using "data", "items" or the given keys are unwrapped.
func ItemsFromPayload(value any, keys ...string) []any {
	if items := AsInterfaceSlice(value); items != nil {
		return items
	}
	container, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	candidates := append([]string{"data", "items"}, keys...)
	for _, key := range candidates {
		if items := AsInterfaceSlice(container[key]); items != nil {
			return items
		}
	}
	return nil
}
