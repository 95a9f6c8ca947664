package kafka

import (
	"context"
	"fmt"

	"github.com/Sokol111/ecommerce-basket-service/internal/events"
	"github.com/Sokol111/ecommerce-basket-service/internal/outbox"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// publisher delivers integration events to Kafka. Publish blocks until the
// broker confirms or rejects delivery, so the caller only marks the message
// processed after the event is actually on the topic.
type publisher struct {
	producer Producer
	registry events.Registry
	tracer   trace.Tracer
	log      *zap.Logger
}

// NewPublisher creates the Kafka-backed transport client for the outbox
// processor. The topic is resolved from the registered event type.
func NewPublisher(producer Producer, registry events.Registry, log *zap.Logger) outbox.Publisher {
	return &publisher{
		producer: producer,
		registry: registry,
		tracer:   otel.Tracer("kafka.publisher"),
		log:      log.With(zap.String("component", "kafka-publisher")),
	}
}

func (p *publisher) Publish(ctx context.Context, eventType string, payload []byte) error {
	evt, err := p.registry.New(eventType)
	if err != nil {
		return fmt.Errorf("cannot resolve topic for event type %s: %w", eventType, err)
	}
	topic := evt.GetTopic()

	ctx, span := p.tracer.Start(ctx, "kafka.produce",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.message.type", eventType),
		),
	)
	defer span.End()

	headers := make(map[string]string)
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))

	kafkaHeaders := make([]kafka.Header, 0, len(headers))
	for key, value := range headers {
		kafkaHeaders = append(kafkaHeaders, kafka.Header{
			Key:   key,
			Value: []byte(value),
		})
	}

	deliveryChan := make(chan kafka.Event, 1)
	err = p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          payload,
		Headers:        kafkaHeaders,
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("failed to produce event: %w", err)
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("publish cancelled: %w", ctx.Err())
	case e := <-deliveryChan:
		msg, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event type %T", e)
		}
		if msg.TopicPartition.Error != nil {
			return fmt.Errorf("kafka delivery failed: %w", msg.TopicPartition.Error)
		}
	}

	p.log.Debug("event published",
		zap.String("topic", topic),
		zap.String("eventType", eventType))
	return nil
}
