// Package file persists the portal state as a single JSON file on disk,
// one top-level member per key. This is the default backend for a
// single-machine deployment.
package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"qaportal/pkg/logger"
	"qaportal/storage"
)

type Store struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
	log  logger.ILogger
}

// New loads the file at path if it exists. An unreadable or corrupt file
// degrades to an empty store rather than failing startup.
func New(path string, log logger.ILogger) storage.IStore {
	s := &Store{
		path: path,
		data: make(map[string]json.RawMessage),
		log:  log,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warning("failed to read store file, starting empty", logger.String("path", path), logger.Error(err))
		}
		return s
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		log.Warning("corrupt store file, starting empty", logger.String("path", path), logger.Error(err))
		s.data = make(map[string]json.RawMessage)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
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
	defer s.mu.Unlock()
	s.data[key] = raw
	s.flush()
}

func (s *Store) Close() {}

// flush writes the whole map to a temp file and renames it over the
// target, so a crash mid-write never leaves a half-written store.
// Callers hold s.mu.
func (s *Store) flush() {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		s.log.Error("failed to encode store file", logger.Error(err))
		return
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".qaportal-*")
	if err != nil {
		s.log.Error("failed to create temp store file", logger.Error(err))
		return
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		s.log.Error("failed to write store file", logger.Error(err))
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		s.log.Error("failed to close store file", logger.Error(err))
		return
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		s.log.Error("failed to replace store file", logger.Error(err))
	}
}
