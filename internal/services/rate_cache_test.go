package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

func TestRateCache(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewRateCache(time.Hour, clock.Now)

	_, ok := c.Get()
	assert.False(t, ok)

	c.Set(models.RateTable{"USD": decimal.NewFromFloat(7.1)})

	table, ok := c.Get()
	require.True(t, ok)
	assert.True(t, table["USD"].Equal(decimal.NewFromFloat(7.1)))

	table["USD"] = decimal.NewFromInt(100)
	again, ok := c.Get()
	require.True(t, ok)
	assert.True(t, again["USD"].Equal(decimal.NewFromFloat(7.1)), "callers get a copy")

	clock.Advance(59 * time.Minute)
	_, ok = c.Get()
	assert.True(t, ok)

	clock.Advance(time.Minute)
	_, ok = c.Get()
	assert.False(t, ok, "entry expires after the TTL")

	c.Set(models.RateTable{})
	c.Invalidate()
	_, ok = c.Get()
	assert.False(t, ok)
}

func TestNewRateCache_Defaults(t *testing.T) {
	c := NewRateCache(0, nil)
	assert.Equal(t, DefaultRateCacheTTL, c.ttl)
	assert.NotNil(t, c.now)
}
