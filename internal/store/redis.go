package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lostfound/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces every entry so a shared Redis instance can hold
// other data alongside the board's state.
const keyPrefix = "lostfound:"

// RedisStore keeps the key-value state in a Redis instance.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis connects to Redis at addr, which may be a bare host:port or
// a redis:// URL.
func OpenRedis(addr string) (*RedisStore, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	middleware.Logger.Info("store opened", "backend", "redis", "addr", opts.Addr)
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	middleware.StoreOps.WithLabelValues("redis", "get").Inc()
	v, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		middleware.StoreErrors.WithLabelValues("redis", "get").Inc()
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	middleware.StoreOps.WithLabelValues("redis", "set").Inc()
	err := s.client.Set(ctx, keyPrefix+key, value, 0).Err()
	if err != nil {
		middleware.StoreErrors.WithLabelValues("redis", "set").Inc()
	}
	return err
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	middleware.StoreOps.WithLabelValues("redis", "remove").Inc()
	err := s.client.Del(ctx, keyPrefix+key).Err()
	if err != nil {
		middleware.StoreErrors.WithLabelValues("redis", "remove").Inc()
	}
	return err
}

func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	middleware.StoreOps.WithLabelValues("redis", "keys").Inc()
	var keys []string
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		middleware.StoreErrors.WithLabelValues("redis", "keys").Inc()
		return nil, err
	}
	return keys, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
