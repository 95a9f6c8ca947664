// Package events defines the integration events published by the basket
// service and the registry used to resolve stored events at relay time.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Metadata contains common event metadata carried by every integration event.
// EventID is stable for the lifetime of the event and is the consumer-side
// deduplication key: redelivery of the same event carries the same EventID.
type Metadata struct {
	// Unique event identifier (UUID).
	EventID string `json:"eventId"`
	// Type of the event (e.g., BasketCheckout).
	EventType string `json:"eventType"`
	// Source service that produced the event.
	Source string `json:"source"`
	// Event creation timestamp.
	OccurredAt time.Time `json:"occurredAt"`
}

// Event is implemented by all integration events.
// Events are self-describing: they know their type and their topic.
type Event interface {
	// GetMetadata returns the event metadata.
	GetMetadata() *Metadata
	// GetEventType returns the stable event type identifier.
	GetEventType() string
	// GetTopic returns the transport topic for this event type.
	GetTopic() string
}

// NewMetadata builds metadata for a freshly created event.
func NewMetadata(eventType string, source string) Metadata {
	return Metadata{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		Source:     source,
		OccurredAt: time.Now().UTC(),
	}
}
