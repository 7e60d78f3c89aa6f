package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a KV kept in a Redis server. Values live in the hash
// "<prefix>:entries"; insertion order is kept in the sorted set
// "<prefix>:order", scored by the counter "<prefix>:seq".
type Redis struct {
	client *redis.Client
	prefix string
}

var _ KV = (*Redis)(nil)

// OpenRedis connects to the server at url (redis://host:port/db) and
// verifies the connection.
func OpenRedis(ctx context.Context, url, prefix string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	if prefix == "" {
		prefix = "contacts"
	}
	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) entriesKey() string { return r.prefix + ":entries" }
func (r *Redis) orderKey() string   { return r.prefix + ":order" }
func (r *Redis) seqKey() string     { return r.prefix + ":seq" }

func (r *Redis) Keys(ctx context.Context) ([]string, error) {
	keys, err := r.client.ZRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.HGet(ctx, r.entriesKey(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes the value and records the key's position unless it already
// has one. A sequence number is consumed even on overwrite; gaps are harmless.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	seq, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("set %q: next seq: %w", key, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.entriesKey(), key, value)
		pipe.ZAddNX(ctx, r.orderKey(), redis.Z{Score: float64(seq), Member: key})
		return nil
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, r.entriesKey(), key)
		pipe.ZRem(ctx, r.orderKey(), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
