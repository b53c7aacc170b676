package storage

import (
	"context"
	"fmt"
	"strings"

	"summarizer/src/model"
)

// Store is a string key-value store. Values are opaque to the store; the
// repository on top of it encodes them as JSON.
type Store interface {
	// Get returns the raw value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open builds the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg model.StoreConfig) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "file":
		return NewFileStorage(cfg.Path)
	case "redis":
		return NewRedisStorage(ctx, cfg.RedisURL)
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
