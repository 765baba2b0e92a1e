package psgc

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/louisbranch/psgc-mcp/internal/cache"
	"github.com/louisbranch/psgc-mcp/internal/platform/logging"
	"github.com/louisbranch/psgc-mcp/internal/platform/metrics"
)

// CacheKeyPrefix is prepended to resource paths to form cache keys.
const CacheKeyPrefix = "psgc:"

const tracerName = "github.com/louisbranch/psgc-mcp/internal/psgc"

// CacheKey returns the cache key for a resource path.
func CacheKey(path string) string {
	return CacheKeyPrefix + path
}

// Fetcher resolves resource paths through the cache and, on a miss, the
// transport. Transient failures are retried with exponential backoff;
// NotFound fails immediately. Failures are never cached.
type Fetcher struct {
	transport  Transport
	cache      cache.Store
	maxRetries int
	baseDelay  time.Duration

	sem     *semaphore.Weighted
	limiter *rate.Limiter
	group   singleflight.Group

	mu      sync.Mutex
	flights map[string]*flight
	nextID  uint64

	logger  *zap.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	notify  func(err error, delay time.Duration)
}

// flight is an upstream fetch shared by every caller waiting on one key. It
// runs detached from any single caller and is canceled once all of them have
// given up.
type flight struct {
	id      string
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithLogger sets the fetcher logger.
func WithLogger(logger *zap.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logging.OrNop(logger)
	}
}

// WithMetrics records fetch and cache instruments on m.
func WithMetrics(m *metrics.Metrics) FetcherOption {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

// WithRetryNotify registers a callback invoked before every retry wait.
func WithRetryNotify(notify func(err error, delay time.Duration)) FetcherOption {
	return func(f *Fetcher) {
		f.notify = notify
	}
}

// NewFetcher builds a fetcher over transport and store using the retry,
// concurrency and rate settings in cfg.
func NewFetcher(transport Transport, store cache.Store, cfg Config, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		transport:  transport,
		cache:      store,
		maxRetries: max(cfg.MaxRetries, 0),
		baseDelay:  max(cfg.RetryBaseDelay, 0),
		logger:     zap.NewNop(),
		tracer:     otel.Tracer(tracerName),
		flights:    make(map[string]*flight),
	}
	if cfg.MaxConcurrentRequests > 0 {
		f.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrentRequests))
	}
	if cfg.RateLimitPerMinute > 0 {
		f.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimitPerMinute)), 1)
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Cache returns the backing store.
func (f *Fetcher) Cache() cache.Store {
	return f.cache
}

// Get returns the raw JSON body for path. With useCache, a fresh cache entry
// is returned without a network call and a successful fetch is stored.
// Concurrent misses for the same path share one upstream fetch; a caller
// whose ctx ends stops waiting without failing the others.
func (f *Fetcher) Get(ctx context.Context, path string, useCache bool) ([]byte, error) {
	if !useCache {
		return f.fetch(ctx, path)
	}

	key := CacheKey(path)
	if body, ok := f.lookup(ctx, key); ok {
		return body, nil
	}

	fl := f.join(ctx, key)
	results := f.group.DoChan(fl.id, func() (any, error) {
		body, err := f.fetch(fl.ctx, path)
		if err != nil {
			return nil, err
		}
		if err := f.cache.Put(fl.ctx, key, body); err != nil {
			f.logger.Warn("cache put failed", zap.String("key", key), zap.Error(err))
		}
		return body, nil
	})
	defer f.leave(key, fl)

	select {
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
}

// join registers the caller on the flight for key, starting a new flight
// detached from ctx when none is in progress.
func (f *Fetcher) join(ctx context.Context, key string) *flight {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl, ok := f.flights[key]
	if !ok {
		f.nextID++
		flightCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		fl = &flight{
			id:     key + "#" + strconv.FormatUint(f.nextID, 10),
			ctx:    flightCtx,
			cancel: cancel,
		}
		f.flights[key] = fl
	}
	fl.waiters++
	return fl
}

// leave drops the caller from fl and cancels it when nobody is left waiting.
func (f *Fetcher) leave(key string, fl *flight) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl.waiters--
	if fl.waiters > 0 {
		return
	}
	fl.cancel()
	if f.flights[key] == fl {
		delete(f.flights, key)
	}
}

// Fetch decodes the resource at path into T.
func Fetch[T any](ctx context.Context, f *Fetcher, path string, useCache bool) (T, error) {
	var out T
	body, err := f.Get(ctx, path, useCache)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, DecodeError(path, err)
	}
	return out, nil
}

func (f *Fetcher) lookup(ctx context.Context, key string) ([]byte, bool) {
	body, ok, err := f.cache.Get(ctx, key)
	if err != nil {
		f.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		ok = false
	}
	f.metrics.CacheLookup(ok)
	if ok {
		f.logger.Debug("cache hit", zap.String("key", key))
	}
	return body, ok
}

func (f *Fetcher) fetch(ctx context.Context, path string) ([]byte, error) {
	ctx, span := f.tracer.Start(ctx, "psgc.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("psgc.path", path)),
	)
	defer span.End()

	start := time.Now()
	attempts := 0
	operation := func() ([]byte, error) {
		attempts++
		body, err := f.attempt(ctx, path)
		switch {
		case err == nil:
			f.metrics.FetchAttempt(metrics.OutcomeSuccess)
			return body, nil
		case IsRetryable(err):
			f.metrics.FetchAttempt(metrics.OutcomeRetry)
			return nil, err
		default:
			f.metrics.FetchAttempt(metrics.OutcomeFailure)
			return nil, backoff.Permanent(err)
		}
	}

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(f.newBackOff()),
		backoff.WithMaxTries(uint(f.maxRetries+1)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, delay time.Duration) {
			f.logger.Warn("retrying psgc request",
				zap.String("path", path),
				zap.Int("attempt", attempts),
				zap.Duration("delay", delay),
				zap.Int("status", StatusOf(err)),
				zap.Error(err),
			)
			if f.notify != nil {
				f.notify(err, delay)
			}
		}),
	)
	f.metrics.FetchDuration(time.Since(start))
	span.SetAttributes(attribute.Int("psgc.attempts", attempts))

	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Unwrap()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		f.logger.Debug("psgc request failed",
			zap.String("path", path),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
		return nil, err
	}
	return body, nil
}

// attempt performs one bounded upstream call.
func (f *Fetcher) attempt(ctx context.Context, path string) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	if f.sem != nil {
		if err := f.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer f.sem.Release(1)
	}

	f.metrics.InflightAdd(1)
	defer f.metrics.InflightAdd(-1)

	body, err := f.transport.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, DecodeError(path, errors.New("response is not valid JSON"))
	}
	return body, nil
}

// newBackOff yields baseDelay, 2*baseDelay, 4*baseDelay, ...
func (f *Fetcher) newBackOff() *backoff.ExponentialBackOff {
	return &backoff.ExponentialBackOff{
		InitialInterval:     f.baseDelay,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         time.Duration(math.MaxInt64),
	}
}
