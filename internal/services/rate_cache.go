package services

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

const currentRatesKey = "current"

// DefaultRateCacheTTL is how long current rates are served before reloading.
const DefaultRateCacheTTL = time.Hour

type cachedRates struct {
	table    models.RateTable
	loadedAt time.Time
}

// RateCache holds the current rate table for a fixed TTL. Freshness is judged
// against the injected clock; go-cache only reclaims memory.
type RateCache struct {
	store *cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewRateCache creates a cache. A nil clock means time.Now.
func NewRateCache(ttl time.Duration, now func() time.Time) *RateCache {
	if ttl <= 0 {
		ttl = DefaultRateCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &RateCache{
		store: cache.New(2*ttl, 4*ttl),
		ttl:   ttl,
		now:   now,
	}
}

// Get returns a copy of the cached table if it is still fresh.
func (c *RateCache) Get() (models.RateTable, bool) {
	v, ok := c.store.Get(currentRatesKey)
	if !ok {
		return nil, false
	}
	entry := v.(cachedRates)
	if c.now().Sub(entry.loadedAt) >= c.ttl {
		c.store.Delete(currentRatesKey)
		return nil, false
	}
	return entry.table.Clone(), true
}

// Set stores table as loaded now.
func (c *RateCache) Set(table models.RateTable) {
	c.store.SetDefault(currentRatesKey, cachedRates{table: table.Clone(), loadedAt: c.now()})
}

// Invalidate drops the cached table.
func (c *RateCache) Invalidate() {
	c.store.Delete(currentRatesKey)
}
