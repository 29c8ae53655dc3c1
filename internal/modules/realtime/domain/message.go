package domain

import "time"

// Metadata carries routing hints such as the target userId or sessionId.
type Metadata map[string]string

// Message is the envelope pushed to websocket clients and decoded from Kafka
// events.
type Message struct {
	Topic      string    `json:"topic"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ResourceID string    `json:"resourceId,omitempty"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	Data       any       `json:"data,omitempty"`
	Timestamp  time.Time `json:"timestamp"`

	// Source is the Kafka topic the message was read from.
	Source string `json:"-"`
}
