package main

import (
	"context"
	"fmt"
	"os"

	"qaportal/config"
	"qaportal/pkg/logger"
	"qaportal/pkg/models"
	"qaportal/storage"
	"qaportal/storage/file"
	"qaportal/storage/postgres"
	"qaportal/storage/redisstore"
)

// Empties the user and question registries of the configured store.
// Per-client session markers are left in place: a stale session points
// at a user that no longer exists, and the next logout/login cycle
// replaces it.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	stg, err := openStore(context.Background(), cfg, log)
	if err != nil {
		panic(err)
	}
	defer stg.Close()

	ctx := context.Background()
	stg.Set(ctx, "qa_users", []models.User{})
	stg.Set(ctx, "qa_questions", []models.Question{})

	log.Info("Successfully emptied the user and question registries.")
}

func openStore(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.IStore, error) {
	switch cfg.StoreBackend {
	case "file":
		return file.New(cfg.StoreFile, log), nil
	case "redis":
		return redisstore.New(cfg, log)
	case "postgres":
		return postgres.New(ctx, cfg, log)
	default:
		fmt.Fprintf(os.Stderr, "nothing to reset for store backend %q\n", cfg.StoreBackend)
		os.Exit(1)
		return nil, nil
	}
}
