package cache

import (
	"context"
	"sync"
	"time"

	"github.com/GlebRadaev/komodohub/internal/domain"
)

type taxonomyEntry struct {
	value     domain.Taxonomy
	expiresAt time.Time
}

// MemoryTaxonomyCache keeps lookups in process memory until they expire.
type MemoryTaxonomyCache struct {
	mu      sync.RWMutex
	entries map[string]taxonomyEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryTaxonomyCache returns a cache whose entries live for ttl; zero
// means they never expire.
func NewMemoryTaxonomyCache(ttl time.Duration) *MemoryTaxonomyCache {
	return &MemoryTaxonomyCache{
		entries: make(map[string]taxonomyEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryTaxonomyCache) Get(_ context.Context, key string) (domain.Taxonomy, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return domain.Taxonomy{}, false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return domain.Taxonomy{}, false, nil
	}
	return e.value, true, nil
}

func (c *MemoryTaxonomyCache) Set(_ context.Context, key string, t domain.Taxonomy) error {
	e := taxonomyEntry{value: t}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

// MemoryCounters holds one day of quest counters per user. A counter for an
// earlier day is replaced on the next increment.
type MemoryCounters struct {
	mu       sync.Mutex
	counters map[int]domain.Counters
}

func NewMemoryCounters() *MemoryCounters {
	return &MemoryCounters{counters: make(map[int]domain.Counters)}
}

func (m *MemoryCounters) Incr(_ context.Context, userID int, date string, kind domain.CounterKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.counters[userID]
	if c.Date != date {
		c = domain.Counters{Date: date}
	}
	switch kind {
	case domain.CounterViews:
		c.Views++
	case domain.CounterShares:
		c.Shares++
	case domain.CounterReports:
		c.Reports++
	default:
		return domain.ErrValidation
	}
	m.counters[userID] = c
	return nil
}

func (m *MemoryCounters) Get(_ context.Context, userID int, date string) (domain.Counters, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counters[userID]
	if !ok || c.Date != date {
		return domain.Counters{Date: date}, nil
	}
	return c, nil
}
