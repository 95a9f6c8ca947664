package mongo

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewMongoModule creates an fx module providing the Mongo connection
// and the transaction manager.
func NewMongoModule() fx.Option {
	return fx.Module("mongo",
		fx.Provide(
			newConfig,
			provideMongo,
			newTxManager,
		),
	)
}

func provideMongo(lc fx.Lifecycle, log *zap.Logger, conf Config) (Mongo, error) {
	m, err := newMongo(log.With(zap.String("component", "mongo")), conf)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return m.connect(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return m.disconnect(ctx)
		},
	})

	return m, nil
}
