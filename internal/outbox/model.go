package outbox

import (
	"context"
	"time"
)

// Message is a durable intent to publish one integration event.
// It is created by the transactional writer in the same transaction as the
// business mutation it describes and is only ever mutated by the processor,
// which sets ProcessedAt exactly once. Messages are never deleted here;
// retention is a deployment concern.
type Message struct {
	ID          string            `bson:"_id"`
	EventType   string            `bson:"eventType"`
	Payload     []byte            `bson:"payload"`
	Headers     map[string]string `bson:"headers,omitempty"`
	OccurredAt  time.Time         `bson:"occurredAt"`
	ProcessedAt *time.Time        `bson:"processedAt,omitempty"`
}

// NewMessage builds a pending message. The current trace context is saved
// into the headers so the processor can link the publish back to the
// request that created the intent.
func NewMessage(ctx context.Context, id string, eventType string, payload []byte) *Message {
	return &Message{
		ID:         id,
		EventType:  eventType,
		Payload:    payload,
		Headers:    saveTraceContext(ctx, nil),
		OccurredAt: time.Now().UTC(),
	}
}

// Pending reports whether the message still awaits delivery.
func (m *Message) Pending() bool {
	return m.ProcessedAt == nil
}
