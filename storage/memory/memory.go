// Package memory is the in-memory IStore used in tests and as the
// fallback backend. Nothing survives a restart.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"qaportal/pkg/logger"
	"qaportal/storage"
)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
	log  logger.ILogger
}

func New(log logger.ILogger) storage.IStore {
	return &Store{
		data: make(map[string][]byte),
		log:  log,
	}
}

func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
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

	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
}

func (s *Store) Close() {}
