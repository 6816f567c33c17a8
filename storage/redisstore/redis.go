// Package redisstore backs the portal state with Redis, one JSON value
// per key. Use it when several portal instances share state.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"qaportal/config"
	"qaportal/pkg/logger"
	"qaportal/storage"
)

type Store struct {
	client *redis.Client
	log    logger.ILogger
}

func New(cfg config.Config, log logger.ILogger) (storage.IStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connect: %w", err)
	}

	log.Info("Redis connected")

	return &Store{client: client, log: log}, nil
}

func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.log.Error("failed to read key from redis", logger.String("key", key), logger.Error(err))
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		s.log.Error("failed to decode stored value", logger.String("key", key), logger.Error(err))
		return false
	}
	return true
}

func (s *Store) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Error("failed to encode value", logger.String("key", key), logger.Error(err))
		return
	}

	// No TTL: portal state lives until overwritten.
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		s.log.Error("failed to write key to redis", logger.String("key", key), logger.Error(err))
	}
}

func (s *Store) Close() {
	s.client.Close()
}
