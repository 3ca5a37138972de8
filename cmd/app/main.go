package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	httpin "orderdesk/internal/adapters/inbound/http"
	kafkain "orderdesk/internal/adapters/inbound/kafka"
	"orderdesk/internal/adapters/outbound/cache"
	"orderdesk/internal/adapters/outbound/gcs"
	"orderdesk/internal/adapters/outbound/postgres"
	"orderdesk/internal/app/config"
	"orderdesk/internal/app/runtime"
	"orderdesk/internal/core/service"
	"orderdesk/internal/logging"
	"orderdesk/internal/ports/outbound"
)

func main() {
	ctx, stop := runtime.NotifyContext(context.Background())
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Base().Error("config", "err", err)
		os.Exit(1)
	}
	log := logging.Init("orderdesk", cfg.LogFile)

	var store outbound.ObjectStore
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("db init", "err", err)
			os.Exit(1)
		}
		defer db.Close()

		docs := postgres.NewDocumentStore(db.Pool)
		if err := docs.EnsureSchema(ctx); err != nil {
			log.Error("schema", "err", err)
			os.Exit(1)
		}
		store = docs
	default:
		store, err = gcs.New(ctx, cfg.BucketName)
		if err != nil {
			log.Error("gcs init", "err", err)
			os.Exit(1)
		}
	}

	orderCache := cache.NewCollectionCache(store, cfg.OrdersObject, cfg.CacheTTL)
	svc := service.NewOrderService(orderCache)

	// warm cache; a cold store is not fatal, reads retry later
	if n, err := svc.WarmOrders(ctx); err != nil {
		log.Warn("warmup failed", "err", err)
	} else {
		log.Info("cache loaded", "orders", n)
	}

	handlers := httpin.NewHandlers(svc)
	mux := httpin.NewMux(handlers, svc, httpin.RouterConfig{
		AuthUsername: cfg.AuthUsername,
		AuthPassword: cfg.AuthPassword,
	})
	httpSrv := runtime.NewHTTPServer(cfg.HTTPAddr, mux)
	httpSrv.Start()

	if len(cfg.KafkaBrokers) > 0 {
		consumer := kafkain.NewConsumer(kafkain.ConsumerConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			GroupID: cfg.KafkaConsumerGroup,
		}, svc)
		defer func() { _ = consumer.Close() }()

		go consumer.Run(ctx)
	}

	<-ctx.Done()
	log.Info("signal received, shutting down")

	if err := httpSrv.Shutdown(context.Background(), cfg.ShutdownTimeout); err != nil {
		log.Error("http shutdown", "err", err)
	}
	hits, misses, reloads := orderCache.Stats()
	log.Info("bye", "cache_hits", hits, "cache_misses", misses, "cache_reloads", reloads)
}
