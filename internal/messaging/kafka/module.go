package kafka

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewKafkaModule creates an fx module providing the Kafka producer and the
// outbox publisher built on top of it.
func NewKafkaModule() fx.Option {
	return fx.Module("kafka",
		fx.Provide(
			newConfig,
			provideProducer,
			NewPublisher,
		),
	)
}

func provideProducer(lc fx.Lifecycle, log *zap.Logger, conf Config) (Producer, error) {
	p, err := newProducer(conf, log.With(zap.String("component", "producer")))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			p.Close()
			return nil
		},
	})

	return p, nil
}
