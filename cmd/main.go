package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"qaportal/config"
	"qaportal/pkg/bot"
	"qaportal/pkg/logger"
	"qaportal/service"
	"qaportal/storage"
	"qaportal/storage/file"
	"qaportal/storage/memory"
	"qaportal/storage/postgres"
	"qaportal/storage/redisstore"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	// 3. Open the persistent store
	stg, err := openStore(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to open store", logger.Error(err))
		os.Exit(1)
	}
	defer stg.Close()

	// 4. Wire the session layer
	svc := service.New(stg, cfg, log)

	// 5. Start the portal bot
	portalBot, err := bot.New(&cfg, svc, log)
	if err != nil {
		log.Error("Failed to initialize bot", logger.Error(err))
		os.Exit(1)
	}

	go portalBot.Start()

	log.Info("🚀 Q&A portal is now running", logger.String("store", cfg.StoreBackend))

	// 6. Graceful shutdown listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("Stopping bot and shutting down...")
}

func openStore(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.IStore, error) {
	switch cfg.StoreBackend {
	case "memory":
		log.Warning("memory store selected, state will not survive a restart")
		return memory.New(log), nil
	case "file":
		return file.New(cfg.StoreFile, log), nil
	case "redis":
		return redisstore.New(cfg, log)
	case "postgres":
		return postgres.New(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
