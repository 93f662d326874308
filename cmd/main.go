package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aquadesk/api"
	"aquadesk/config"
	"aquadesk/pkg/backend"
	"aquadesk/pkg/bot"
	"aquadesk/pkg/events"
	"aquadesk/pkg/logger"
	"aquadesk/pkg/metrics"
	"aquadesk/service"
	"aquadesk/storage"
	"aquadesk/storage/cache"
	"aquadesk/storage/postgres"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	ctx := context.Background()

	// 3. Initialize Snapshot Storage (file or Postgres)
	var snaps storage.ISnapshotStorage
	var err error
	switch cfg.StorageDriver {
	case "postgres":
		snaps, err = postgres.New(ctx, cfg, log)
	default:
		snaps, err = cache.NewFileSnapshots(cfg.DataDir)
	}
	if err != nil {
		log.Error("failed to initialize snapshot storage", logger.Error(err))
		os.Exit(1)
	}
	defer snaps.Close()

	orderCache := cache.NewOrderCache(ctx, snaps, log)
	prefs := cache.NewPreferenceStorage(ctx, snaps, log)

	// 4. Initialize Backend Client
	client := backend.NewClient(cfg, log)

	// 5. Initialize Event Producer (optional Kafka)
	var producer events.IProducer = events.NoopProducer{}
	if cfg.KafkaEnabled {
		producer, err = events.New(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Warning("Kafka unavailable, events disabled", logger.Error(err))
			producer = events.NoopProducer{}
		}
	}
	defer producer.Close()

	// 6. Initialize Metrics and Services
	m := metrics.New()
	svc := service.New(orderCache, client, producer, m, log)

	// 7. Run HTTP server
	server := api.NewServer(cfg, svc, prefs, m, log)
	go func() {
		if err := server.Start(); err != nil {
			log.Error("HTTP server stopped", logger.Error(err))
			os.Exit(1)
		}
	}()

	// 8. Run Courier Bot (optional)
	var courierBot *bot.Bot
	if cfg.BotEnabled && cfg.CourierBotToken != "" {
		courierBot, err = bot.New(&cfg, svc, log)
		if err != nil {
			log.Error("failed to initialize courier bot", logger.Error(err))
			os.Exit(1)
		}
		go courierBot.Start()
	}

	log.Info("aquadesk is now running")

	// 9. Graceful Shutdown listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("shutting down...")
	if courierBot != nil {
		courierBot.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error", logger.Error(err))
	}
}
