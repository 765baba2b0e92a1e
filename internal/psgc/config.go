package psgc

import (
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/psgc-mcp/internal/cache"
	"github.com/louisbranch/psgc-mcp/internal/platform/timeouts"
)

// DefaultBaseURL is the public PSGC dataset.
const DefaultBaseURL = "https://psgc.gitlab.io/api"

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendSQLite = "sqlite"
	CacheBackendRedis  = "redis"
)

// Config holds the client settings. Every field can be overridden through
// the environment.
type Config struct {
	BaseURL               string        `env:"PSGC_API_URL" envDefault:"https://psgc.gitlab.io/api"`
	RequestTimeout        time.Duration `env:"PSGC_REQUEST_TIMEOUT" envDefault:"30s"`
	MaxRetries            int           `env:"PSGC_MAX_RETRIES" envDefault:"3"`
	RetryBaseDelay        time.Duration `env:"PSGC_RETRY_BASE_DELAY" envDefault:"1s"`
	CacheTTL              time.Duration `env:"PSGC_CACHE_TTL" envDefault:"5m"`
	CacheBackend          string        `env:"PSGC_CACHE_BACKEND" envDefault:"memory"`
	CachePath             string        `env:"PSGC_CACHE_PATH"`
	CacheMaxEntries       int           `env:"PSGC_CACHE_MAX_ENTRIES" envDefault:"1000"`
	RedisURL              string        `env:"PSGC_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	MaxConcurrentRequests int           `env:"PSGC_MAX_CONCURRENT_REQUESTS" envDefault:"10"`
	RateLimitPerMinute    int           `env:"PSGC_RATE_LIMIT_PER_MINUTE" envDefault:"0"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		BaseURL:               DefaultBaseURL,
		RequestTimeout:        timeouts.UpstreamRequest,
		MaxRetries:            3,
		RetryBaseDelay:        time.Second,
		CacheTTL:              cache.DefaultTTL,
		CacheBackend:          CacheBackendMemory,
		CacheMaxEntries:       1000,
		RedisURL:              "redis://localhost:6379/0",
		MaxConcurrentRequests: 10,
	}
}

// Validate checks the settings for values the client cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative")
	}
	if c.RetryBaseDelay < 0 {
		return fmt.Errorf("retry base delay must not be negative")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache ttl must be positive")
	}
	switch c.CacheBackend {
	case CacheBackendMemory, CacheBackendSQLite, CacheBackendRedis:
	default:
		return fmt.Errorf("unsupported cache backend %q", c.CacheBackend)
	}
	if c.MaxConcurrentRequests < 0 {
		return fmt.Errorf("max concurrent requests must not be negative")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}
