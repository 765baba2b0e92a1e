// Package client assembles a PSGC client from configuration: the cache
// backend, the HTTP transport and the fetcher.
package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/louisbranch/psgc-mcp/internal/cache"
	"github.com/louisbranch/psgc-mcp/internal/cache/rediscache"
	"github.com/louisbranch/psgc-mcp/internal/cache/sqlitecache"
	"github.com/louisbranch/psgc-mcp/internal/platform/logging"
	"github.com/louisbranch/psgc-mcp/internal/platform/metrics"
	"github.com/louisbranch/psgc-mcp/internal/platform/timeouts"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
)

// Runtime owns a client and the cache backing it.
type Runtime struct {
	Client *psgc.Client
	Store  cache.Store
}

// Close releases the cache backend.
func (r *Runtime) Close() error {
	if r == nil || r.Store == nil {
		return nil
	}
	return r.Store.Close()
}

// Open validates cfg and builds a client. Transport may be nil to use the
// HTTP transport for cfg.BaseURL.
func Open(ctx context.Context, cfg psgc.Config, transport psgc.Transport, logger *zap.Logger, m *metrics.Metrics) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid psgc config: %w", err)
	}
	logger = logging.OrNop(logger)

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if transport == nil {
		transport = psgc.NewHTTPTransport(cfg.BaseURL, cfg.RequestTimeout)
	}
	fetcher := psgc.NewFetcher(transport, store, cfg,
		psgc.WithLogger(logger),
		psgc.WithMetrics(m),
	)
	logger.Debug("psgc client ready",
		zap.String("base_url", cfg.BaseURL),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)
	return &Runtime{Client: psgc.NewClient(fetcher), Store: store}, nil
}

// OpenStore opens the cache backend named by cfg.CacheBackend.
func OpenStore(ctx context.Context, cfg psgc.Config, logger *zap.Logger) (cache.Store, error) {
	switch cfg.CacheBackend {
	case "", psgc.CacheBackendMemory:
		return cache.NewMemory(cfg.CacheTTL), nil
	case psgc.CacheBackendSQLite:
		path := cfg.CachePath
		if path == "" {
			path = sqlitecache.DefaultPath()
		}
		store, err := sqlitecache.Open(ctx, path, sqlitecache.Options{
			TTL:        cfg.CacheTTL,
			MaxEntries: cfg.CacheMaxEntries,
		})
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		return store, nil
	case psgc.CacheBackendRedis:
		dialCtx, cancel := context.WithTimeout(ctx, timeouts.CacheBackendDial)
		defer cancel()
		store, err := rediscache.Dial(dialCtx, cfg.RedisURL, rediscache.Options{TTL: cfg.CacheTTL}, logger)
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}
}
