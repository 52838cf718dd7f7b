package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ApplyDefaults fills in zero-valued fields.
func (c *RedisConfig) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 3 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 3 * time.Second
	}
}

// RedisStore is the Redis-backed Store implementation.
type RedisStore struct {
	rdb *goredis.Client
}

// NewRedisStore creates a Redis store and verifies the connection.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	cfg.ApplyDefaults()

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: failed to connect to redis: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

// Get retrieves the raw bytes for key. redis.Nil is a miss, not an error.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: redis get: %w", err)
	}
	return data, true, nil
}

// Set stores value under key with the given TTL (SET key value EX ttl).
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache: redis del: %w", err)
	}
	return nil
}

// DeletePattern enumerates keys matching the glob via SCAN and deletes
// them in batches, returning the number of keys deleted.
func (s *RedisStore) DeletePattern(ctx context.Context, pattern string) (int, error) {
	deleted := 0
	batch := make([]string, 0, scanBatchSize)

	iter := s.rdb.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= scanBatchSize {
			n, err := s.rdb.Del(ctx, batch...).Result()
			deleted += int(n)
			if err != nil {
				return deleted, fmt.Errorf("cache: redis del batch: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("cache: redis scan: %w", err)
	}

	if len(batch) > 0 {
		n, err := s.rdb.Del(ctx, batch...).Result()
		deleted += int(n)
		if err != nil {
			return deleted, fmt.Errorf("cache: redis del batch: %w", err)
		}
	}

	return deleted, nil
}

// Ping verifies the Redis connection is alive.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

const scanBatchSize = 100

// Ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)
