package outbox

import (
	"context"

	"github.com/Sokol111/ecommerce-basket-service/internal/core/worker"
	"github.com/Sokol111/ecommerce-basket-service/internal/persistence/mongo"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// NewOutboxModule creates an fx module providing the outbox store and the
// background processor.
func NewOutboxModule() fx.Option {
	return fx.Module("outbox",
		fx.Provide(
			newConfig,
			NewStore,
			provideMetrics,
			NewProcessor,
			worker.Register[*Processor]("outbox-processor"),
		),
		fx.Invoke(ensureIndexes),
	)
}

func provideMetrics() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
}

func ensureIndexes(lc fx.Lifecycle, m mongo.Mongo) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return EnsureIndexes(ctx, m)
		},
	})
}
