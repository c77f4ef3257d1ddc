// Package store provides the local key-value store the application keeps
// all of its state in. Values are opaque strings (JSON payloads); keys
// are enumerable so derived indexes can be rebuilt from the store alone.
package store

import (
	"context"
	"fmt"

	"lostfound/internal/config"
)

// Store is a persistent string-keyed store. Implementations must treat
// each operation as a single complete read or write; callers follow a
// read-modify-write discipline with last-write-wins semantics.
type Store interface {
	// Get returns the value for key. The boolean reports whether the
	// key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	// Keys enumerates every key currently in the store, in no
	// particular order.
	Keys(ctx context.Context) ([]string, error)
	// Close releases any underlying resources.
	Close() error
}

// Open constructs the store backend selected by the configuration.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendSQLite:
		return OpenSQLite(cfg.StorePath)
	case config.StoreBackendRedis:
		return OpenRedis(cfg.RedisURL)
	case config.StoreBackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
