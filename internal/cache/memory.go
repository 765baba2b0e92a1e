package cache

import (
	"context"
	"slices"
	"sync"
	"time"
)

type entry struct {
	value    []byte
	storedAt time.Time
}

// Memory is an in-process Store guarded by a read/write mutex.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     Clock
	entries map[string]entry
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithClock overrides the time source.
func WithClock(now Clock) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory creates an empty store. A non-positive ttl selects DefaultTTL.
func NewMemory(ttl time.Duration, opts ...MemoryOption) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if m.fresh(e) {
		return e.value, true, nil
	}

	m.mu.Lock()
	// Another goroutine may have refreshed the key in between.
	if cur, ok := m.entries[key]; ok && !m.fresh(cur) {
		delete(m.entries, key)
	}
	m.mu.Unlock()
	return nil, false, nil
}

// Put implements Store.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = entry{value: stored, storedAt: m.now()}
	m.mu.Unlock()
	return nil
}

// InvalidateAll implements Store.
func (m *Memory) InvalidateAll(context.Context) error {
	m.mu.Lock()
	clear(m.entries)
	m.mu.Unlock()
	return nil
}

// Cleanup implements Store.
func (m *Memory) Cleanup(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, e := range m.entries {
		if !m.fresh(e) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Stats implements Store.
func (m *Memory) Stats(context.Context) (Stats, error) {
	m.mu.RLock()
	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	m.mu.RUnlock()

	slices.Sort(keys)
	return Stats{EntryCount: len(keys), Keys: keys}, nil
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}

func (m *Memory) fresh(e entry) bool {
	return m.now().Sub(e.storedAt) < m.ttl
}
