package outbox

import "context"

// Publisher delivers one integration event to the message transport.
// Implementations must be safe to call multiple times for the same logical
// event: the processor guarantees at-least-once delivery, so duplicates
// are possible after a crash between publish and mark-processed.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload []byte) error
}
