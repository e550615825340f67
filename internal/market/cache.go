package market

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

// HistoryFetcher returns the daily close history of a symbol.
type HistoryFetcher interface {
	FetchDaily(ctx context.Context, symbol string) (model.PriceSeries, error)
}

type cacheEntry struct {
	series    model.PriceSeries
	expiresAt time.Time
}

// HistoryCache is a HistoryFetcher that remembers successful fetches for a
// TTL and collapses concurrent fetches of the same symbol into one call.
// Errors are never cached.
type HistoryCache struct {
	fetcher HistoryFetcher
	ttl     time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

// NewHistoryCache wraps fetcher. A ttl of zero or less disables caching but
// keeps the request collapsing.
func NewHistoryCache(fetcher HistoryFetcher, ttl time.Duration) *HistoryCache {
	return &HistoryCache{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// FetchDaily implements HistoryFetcher.
func (c *HistoryCache) FetchDaily(ctx context.Context, symbol string) (model.PriceSeries, error) {
	key := strings.ToUpper(strings.TrimSpace(symbol))

	if series, ok := c.lookup(key); ok {
		return series, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if series, ok := c.lookup(key); ok {
			return series, nil
		}
		series, err := c.fetcher.FetchDaily(ctx, symbol)
		if err != nil {
			return model.PriceSeries{}, err
		}
		c.store(key, series)
		return series, nil
	})
	if err != nil {
		return model.PriceSeries{}, err
	}

	return v.(model.PriceSeries), nil
}

// Purge drops expired entries and returns how many were removed.
func (c *HistoryCache) Purge() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached symbols, expired or not.
func (c *HistoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *HistoryCache) lookup(key string) (model.PriceSeries, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expiresAt) {
		return model.PriceSeries{}, false
	}
	return entry.series, true
}

func (c *HistoryCache) store(key string, series model.PriceSeries) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{series: series, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
