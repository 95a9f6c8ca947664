package main

import (
	"github.com/Sokol111/ecommerce-basket-service/internal/basket"
	"github.com/Sokol111/ecommerce-basket-service/internal/core/config"
	"github.com/Sokol111/ecommerce-basket-service/internal/core/logger"
	"github.com/Sokol111/ecommerce-basket-service/internal/core/metrics"
	"github.com/Sokol111/ecommerce-basket-service/internal/core/tracing"
	"github.com/Sokol111/ecommerce-basket-service/internal/core/worker"
	"github.com/Sokol111/ecommerce-basket-service/internal/events"
	"github.com/Sokol111/ecommerce-basket-service/internal/messaging/kafka"
	"github.com/Sokol111/ecommerce-basket-service/internal/outbox"
	"github.com/Sokol111/ecommerce-basket-service/internal/persistence/mongo"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		logger.NewZapLoggingModule(),
		config.NewAppConfigModule(),
		config.NewViperModule(),
		tracing.NewTracingModule(),
		metrics.NewMetricsModule(),
		mongo.NewMongoModule(),
		events.NewEventsModule(),
		kafka.NewKafkaModule(),
		outbox.NewOutboxModule(),
		basket.NewBasketModule(),
		worker.Module(),
	).Run()
}
