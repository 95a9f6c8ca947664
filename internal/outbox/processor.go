package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sokol111/ecommerce-basket-service/internal/events"
	"go.uber.org/zap"
)

// Processor is the relay: a long-running background task that periodically
// drains pending outbox messages and delivers them to the transport.
//
// Delivery is at-least-once. A crash between a successful publish and
// MarkProcessed causes redelivery on a later tick; consumers deduplicate on
// the event id carried in the payload. The design assumes a single active
// Processor instance per outbox collection - running several concurrently
// requires a claim mechanism this service does not implement.
type Processor struct {
	store     Store
	publisher Publisher
	registry  events.Registry
	metrics   *Metrics
	interval  time.Duration
	log       *zap.Logger
}

func NewProcessor(store Store, publisher Publisher, registry events.Registry, metrics *Metrics, conf *Config, log *zap.Logger) *Processor {
	return &Processor{
		store:     store,
		publisher: publisher,
		registry:  registry,
		metrics:   metrics,
		interval:  conf.Interval,
		log:       log.With(zap.String("component", "outbox-processor")),
	}
}

// Run processes pending messages on a fixed interval until the context is
// cancelled. Tick failures are logged and never terminate the loop.
func (p *Processor) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.tick(ctx); err != nil {
				p.log.Error("outbox tick failed", zap.Error(err))
			}
		}
	}
}

func (p *Processor) tick(ctx context.Context) error {
	messages, err := p.store.FetchPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch pending messages: %w", err)
	}

	p.metrics.PendingCount.Set(float64(len(messages)))

	if len(messages) == 0 {
		return nil
	}

	// One failed delivery must not block the rest of the batch: each
	// message is attempted on its own and failures leave it pending for
	// the next tick.
	processed := make([]string, 0, len(messages))
	for i := range messages {
		msg := &messages[i]
		if err := p.deliver(ctx, msg); err != nil {
			p.metrics.FailedTotal.WithLabelValues(msg.EventType).Inc()
			p.log.Warn("delivery failed, message stays pending",
				zap.String("id", msg.ID),
				zap.String("eventType", msg.EventType),
				zap.Error(err))
			continue
		}
		p.metrics.PublishedTotal.WithLabelValues(msg.EventType).Inc()
		processed = append(processed, msg.ID)
	}

	if len(processed) == 0 {
		return nil
	}

	if err := p.store.MarkProcessed(ctx, processed); err != nil {
		return fmt.Errorf("failed to mark messages processed: %w", err)
	}

	p.log.Debug("outbox messages delivered", zap.Int("count", len(processed)))
	return nil
}

func (p *Processor) deliver(ctx context.Context, msg *Message) error {
	evt, err := p.registry.New(msg.EventType)
	if err != nil {
		// Unregistered types stay pending until the registry is fixed.
		return fmt.Errorf("cannot resolve event type: %w", err)
	}

	if err := json.Unmarshal(msg.Payload, evt); err != nil {
		return fmt.Errorf("failed to deserialize payload for event type %s: %w", msg.EventType, err)
	}

	ctx = restoreTraceContext(ctx, msg.Headers)

	if err := p.publisher.Publish(ctx, msg.EventType, msg.Payload); err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}

	p.log.Debug("event delivered",
		zap.String("eventId", evt.GetMetadata().EventID),
		zap.String("eventType", msg.EventType))
	return nil
}
