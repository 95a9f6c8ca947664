package basket

import (
	"context"

	"github.com/Sokol111/ecommerce-basket-service/internal/core/config"
	"github.com/Sokol111/ecommerce-basket-service/internal/outbox"
	"github.com/Sokol111/ecommerce-basket-service/internal/persistence"
	"github.com/Sokol111/ecommerce-basket-service/internal/persistence/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewBasketModule creates an fx module providing the basket repository
// and service.
func NewBasketModule() fx.Option {
	return fx.Module("basket",
		fx.Provide(
			NewRepository,
			provideService,
		),
		fx.Invoke(ensureIndexes),
		fx.Invoke(func(Service) {}),
	)
}

func provideService(baskets Repository, outboxStore outbox.Store, tx persistence.TxManager, conf config.AppConfig, log *zap.Logger) Service {
	return NewService(baskets, outboxStore, tx, conf.ServiceName, log)
}

func ensureIndexes(lc fx.Lifecycle, m mongo.Mongo) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return EnsureIndexes(ctx, m)
		},
	})
}
