// Package cache provides the response cache consulted by the PSGC fetcher.
//
// Entries carry the time they were stored; a Get returns a hit only while
// now - storedAt < ttl. Expiry is lazy: stale entries are skipped on read
// and replaced by the next Put. Cleanup removes them on demand.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the freshness window applied when none is configured.
const DefaultTTL = 5 * time.Minute

// Store is a key/value cache with a uniform TTL.
type Store interface {
	// Get returns the payload for key when a fresh entry exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores value under key, replacing any previous entry.
	Put(ctx context.Context, key string, value []byte) error
	// InvalidateAll drops every entry.
	InvalidateAll(ctx context.Context) error
	// Cleanup removes expired entries and returns how many were dropped.
	Cleanup(ctx context.Context) (int, error)
	// Stats reports the entries currently held, fresh or not.
	Stats(ctx context.Context) (Stats, error)
	// Close releases backend resources.
	Close() error
}

// Stats summarises the contents of a Store.
type Stats struct {
	EntryCount int      `json:"size"`
	Keys       []string `json:"entries"`
}

// Clock returns the current time.
type Clock func() time.Time
