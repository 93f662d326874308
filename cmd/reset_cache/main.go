package main

import (
	"context"
	"os"

	"aquadesk/config"
	"aquadesk/pkg/logger"
	"aquadesk/storage"
	"aquadesk/storage/cache"
	"aquadesk/storage/postgres"
)

// Wipes the local snapshots: the date-bucketed order cache and the UI
// preferences. Backend data is untouched.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	ctx := context.Background()

	var snaps storage.ISnapshotStorage
	var err error
	switch cfg.StorageDriver {
	case "postgres":
		snaps, err = postgres.New(ctx, cfg, log)
	default:
		snaps, err = cache.NewFileSnapshots(cfg.DataDir)
	}
	if err != nil {
		log.Error("failed to open snapshot storage", logger.Error(err))
		os.Exit(1)
	}
	defer snaps.Close()

	for _, key := range []string{storage.SnapshotKeyOrders, storage.SnapshotKeyPreferences} {
		if err := snaps.Save(ctx, key, []byte("{}")); err != nil {
			log.Error("failed to reset snapshot", logger.String("key", key), logger.Error(err))
			os.Exit(1)
		}
	}
	log.Info("snapshots reset")
}
