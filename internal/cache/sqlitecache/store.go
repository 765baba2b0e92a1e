// Package sqlitecache provides a SQLite-backed cache.Store that survives
// process restarts.
package sqlitecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/psgc-mcp/internal/cache"
	"github.com/louisbranch/psgc-mcp/internal/cache/sqlitecache/migrations"
	"github.com/louisbranch/psgc-mcp/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// DefaultMaxEntries is the row count above which a Put triggers cleanup.
const DefaultMaxEntries = 1000

// DefaultPath returns the cache file used when none is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "psgc-mcp-cache", "cache.db")
}

// Options configures a Store.
type Options struct {
	TTL        time.Duration
	MaxEntries int
	Clock      cache.Clock
}

// Store persists cache entries in SQLite.
type Store struct {
	sqlDB      *sql.DB
	ttl        time.Duration
	maxEntries int
	now        cache.Clock
}

var _ cache.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens (or creates) the cache database at path.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("cache path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &Store{
		sqlDB:      sqlDB,
		ttl:        opts.TTL,
		maxEntries: opts.MaxEntries,
		now:        opts.Clock,
	}
	if s.ttl <= 0 {
		s.ttl = cache.DefaultTTL
	}
	if s.maxEntries <= 0 {
		s.maxEntries = DefaultMaxEntries
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get implements cache.Store.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value    []byte
		storedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT value, stored_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&value, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cache entry: %w", err)
	}
	if toMillis(s.now())-storedAt < s.ttl.Milliseconds() {
		return value, true, nil
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE key = ? AND stored_at = ?`, key, storedAt,
	); err != nil {
		return nil, false, fmt.Errorf("drop expired cache entry: %w", err)
	}
	return nil, false, nil
}

// Put implements cache.Store. When the table grows past MaxEntries,
// expired rows are purged.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO cache_entries (key, value, stored_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, stored_at = excluded.stored_at`,
		key, value, toMillis(s.now()),
	); err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}

	count, err := s.count(ctx)
	if err != nil {
		return err
	}
	if count > s.maxEntries {
		if _, err := s.Cleanup(ctx); err != nil {
			return err
		}
	}
	return nil
}

// InvalidateAll implements cache.Store.
func (s *Store) InvalidateAll(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cache_entries`); err != nil {
		return fmt.Errorf("clear cache entries: %w", err)
	}
	return nil
}

// Cleanup implements cache.Store.
func (s *Store) Cleanup(ctx context.Context) (int, error) {
	cutoff := toMillis(s.now()) - s.ttl.Milliseconds()
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cache_entries WHERE stored_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup cache entries: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cleanup rows affected: %w", err)
	}
	return int(removed), nil
}

// Stats implements cache.Store.
func (s *Store) Stats(ctx context.Context) (cache.Stats, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT key FROM cache_entries ORDER BY key`)
	if err != nil {
		return cache.Stats{}, fmt.Errorf("list cache entries: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return cache.Stats{}, fmt.Errorf("scan cache key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return cache.Stats{}, fmt.Errorf("iterate cache keys: %w", err)
	}
	return cache.Stats{EntryCount: len(keys), Keys: keys}, nil
}

func (s *Store) count(ctx context.Context) (int, error) {
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM cache_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return count, nil
}
