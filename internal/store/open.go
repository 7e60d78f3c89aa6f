package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Options selects and configures a KV backend.
type Options struct {
	Backend     string // BackendSQLite (default), BackendMemory or BackendRedis
	Path        string // SQLite database path
	RedisURL    string
	RedisPrefix string
}

// Open returns the backend named by opts.Backend. For SQLite the parent
// directory of opts.Path is created if needed.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite backend requires a database path")
		}
		if opts.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		return OpenSQLite(opts.Path)
	case BackendMemory:
		return NewMemory(), nil
	case BackendRedis:
		return OpenRedis(ctx, opts.RedisURL, opts.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
