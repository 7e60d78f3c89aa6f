package store

import "context"

// KV is the key-value collaborator the record adapter is built on.
//
// Implementations must enumerate exactly the keys that have been Set and
// not Removed, in first-insertion order.
type KV interface {
	// Keys returns every key currently in the store.
	Keys(ctx context.Context) ([]string, error)

	// Get returns the value stored under key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, overwriting any existing value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)
