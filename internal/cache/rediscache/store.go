// Package rediscache provides a Redis-backed cache.Store shared between
// processes. Expiry is delegated to Redis key TTLs.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/louisbranch/psgc-mcp/internal/cache"
	"github.com/louisbranch/psgc-mcp/internal/platform/logging"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "psgc-mcp:"

const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second
	scanCount    = 200
)

// Options configures a Store.
type Options struct {
	TTL    time.Duration
	Prefix string
}

// Store keeps cache entries in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

var _ cache.Store = (*Store)(nil)

// Dial parses redisURL, connects and pings the server.
func Dial(ctx context.Context, redisURL string, opts Options, logger *zap.Logger) (*Store, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	options.PoolSize = 10
	options.MinIdleConns = 1
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	logging.OrNop(logger).Info("redis cache connected",
		zap.String("addr", options.Addr),
		zap.Int("db", options.DB),
	)
	return New(client, opts), nil
}

// New wraps an existing client.
func New(client *redis.Client, opts Options) *Store {
	s := &Store{client: client, ttl: opts.TTL, prefix: opts.Prefix}
	if s.ttl <= 0 {
		s.ttl = cache.DefaultTTL
	}
	if s.prefix == "" {
		s.prefix = DefaultPrefix
	}
	return s
}

// Ping verifies that the Redis client is healthy.
func Ping(ctx context.Context, client *redis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}

// Get implements cache.Store.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

// Put implements cache.Store.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidateAll implements cache.Store. Only keys under the prefix are
// removed.
func (s *Store) InvalidateAll(ctx context.Context) error {
	keys, err := s.scan(ctx)
	if err != nil {
		return err
	}
	for chunk := range slices.Chunk(keys, scanCount) {
		if err := s.client.Del(ctx, chunk...).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}
	return nil
}

// Cleanup implements cache.Store. Redis expires keys itself, so there is
// never anything to remove.
func (s *Store) Cleanup(context.Context) (int, error) {
	return 0, nil
}

// Stats implements cache.Store.
func (s *Store) Stats(ctx context.Context) (cache.Stats, error) {
	keys, err := s.scan(ctx)
	if err != nil {
		return cache.Stats{}, err
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, strings.TrimPrefix(key, s.prefix))
	}
	slices.Sort(out)
	return cache.Stats{EntryCount: len(out), Keys: out}, nil
}

// Close implements cache.Store.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) scan(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}
