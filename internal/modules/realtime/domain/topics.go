package domain

import "strings"

const (
	SystemEntity = "system"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionCancelled = "cancelled"
	ActionChanged   = "changed"

	// ActionAvailability is the command the reservation board sends after
	// every change of date, time or party size.
	ActionAvailability = "availability"
	ActionAvailable    = "disponibles"

	AvailabilityEntity     = "mesas"
	TopicAvailability      = AvailabilityEntity + "." + ActionAvailable
	TopicAvailabilityError = AvailabilityEntity + "." + ActionError
)

// ChangedTopic returns the topic announcing that the given entity changed.
func ChangedTopic(entity string) string {
	return buildEntityTopic(entity, ActionChanged)
}

// ErrorTopic returns the canonical error topic for the given entity.
func ErrorTopic(entity string) string {
	return buildEntityTopic(entity, ActionError)
}

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	return buildEntityTopic(entity, action)
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
