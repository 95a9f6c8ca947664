// Package tracing installs the global W3C trace-context propagation used by
// the outbox and the Kafka publisher. Span export needs an SDK pipeline and
// is a deployment concern; propagation only needs the otel API.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// SetupPropagation sets the global text-map propagator. Without it
// otel.GetTextMapPropagator is a no-op and every injected carrier
// stays empty.
func SetupPropagation() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}

// NewTracingModule creates an fx module installing trace propagation at startup.
func NewTracingModule() fx.Option {
	return fx.Module("tracing",
		fx.Invoke(func(log *zap.Logger) {
			SetupPropagation()
			log.Info("trace propagation initialized")
		}),
	)
}
