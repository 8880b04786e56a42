package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/db/dbtest"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

func TestExchangeRateRepository(t *testing.T) {
	repo := NewExchangeRateRepository(dbtest.NewSQLite(t))
	ctx := context.Background()

	oct := time.Date(2025, 10, 1, 15, 30, 0, 0, time.UTC)
	nov := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	for _, rate := range []*models.ExchangeRate{
		{FromCurrency: "usd", Rate: decimal.NewFromFloat(7.0), EffectiveDate: oct},
		{FromCurrency: "USD", Rate: decimal.NewFromFloat(7.1), EffectiveDate: nov},
		{FromCurrency: "HKD", Rate: decimal.NewFromFloat(0.91), EffectiveDate: oct},
	} {
		require.NoError(t, repo.Upsert(ctx, rate))
	}

	// same pair and day replaces the rate
	require.NoError(t, repo.Upsert(ctx, &models.ExchangeRate{FromCurrency: "USD", Rate: decimal.NewFromFloat(7.2), EffectiveDate: nov.Add(3 * time.Hour), Source: models.RateSourceStatic}))

	latest, err := repo.ListLatest(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "HKD", latest[0].FromCurrency)
	assert.Equal(t, "USD", latest[1].FromCurrency)
	assert.True(t, latest[1].Rate.Equal(decimal.NewFromFloat(7.2)))
	assert.Equal(t, models.RateSourceStatic, latest[1].Source)

	history, err := repo.History(ctx, "usd", nil, nil)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Rate.Equal(decimal.NewFromFloat(7.0)))
	assert.Equal(t, 0, history[0].EffectiveDate.Hour(), "effective dates are stored as days")

	start := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	history, err = repo.History(ctx, "USD", &start, nil)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
