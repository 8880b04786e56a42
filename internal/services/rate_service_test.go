package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

func TestRateService_CurrentRates(t *testing.T) {
	env := newTestEnv(t, ImportOptions{})
	ctx := context.Background()

	table, err := env.rates.CurrentRates(ctx)
	require.NoError(t, err)
	assert.True(t, table["USD"].Equal(decimal.NewFromFloat(7.1)))
	assert.True(t, table["CNY"].Equal(decimal.NewFromInt(1)))

	_, err = env.rates.UpsertExchangeRate(ctx, "usd", decimal.NewFromFloat(7.3), env.clock.Now())
	require.NoError(t, err)

	table, err = env.rates.CurrentRates(ctx)
	require.NoError(t, err)
	assert.True(t, table["USD"].Equal(decimal.NewFromFloat(7.3)), "writes invalidate the cache")

	// a write that bypasses the service is only seen after the TTL
	require.NoError(t, env.store.ExchangeRates().Upsert(ctx, &models.ExchangeRate{
		FromCurrency: "USD", Rate: decimal.NewFromFloat(7.4), EffectiveDate: env.clock.Now().Add(24 * time.Hour),
	}))
	table, err = env.rates.CurrentRates(ctx)
	require.NoError(t, err)
	assert.True(t, table["USD"].Equal(decimal.NewFromFloat(7.3)))

	env.clock.Advance(time.Hour)
	table, err = env.rates.CurrentRates(ctx)
	require.NoError(t, err)
	assert.True(t, table["USD"].Equal(decimal.NewFromFloat(7.4)))
}

func TestRateService_UpsertValidation(t *testing.T) {
	env := newTestEnv(t, ImportOptions{})
	ctx := context.Background()
	now := env.clock.Now()

	tests := []struct {
		name  string
		from  string
		rate  decimal.Decimal
		date  time.Time
		field string
	}{
		{"base currency", "CNY", decimal.NewFromInt(1), now, "from_currency"},
		{"unsupported", "BTC", decimal.NewFromInt(1), now, "from_currency"},
		{"non-positive rate", "USD", decimal.Zero, now, "rate"},
		{"missing date", "USD", decimal.NewFromInt(7), time.Time{}, "effective_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.rates.UpsertExchangeRate(ctx, tt.from, tt.rate, tt.date)
			var validation *apperrors.ErrValidation
			require.True(t, errors.As(err, &validation), "got %v", err)
			assert.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestRateService_RefreshAndHistory(t *testing.T) {
	env := newTestEnv(t, ImportOptions{})
	ctx := context.Background()

	stored, err := env.rates.Refresh(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 5)
	for _, r := range stored {
		assert.Equal(t, models.RateSourceStatic, r.Source)
		assert.Equal(t, models.DateOnly(env.clock.Now()), r.EffectiveDate)
	}

	latest, err := env.rates.ListLatest(ctx)
	require.NoError(t, err)
	assert.Len(t, latest, 5)

	table, err := env.rates.CurrentRates(ctx)
	require.NoError(t, err)
	assert.True(t, table["GBP"].Equal(decimal.NewFromFloat(9.1)))

	history, err := env.rates.History(ctx, "EUR", nil, nil)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = env.rates.History(ctx, "XYZ", nil, nil)
	var validation *apperrors.ErrValidation
	assert.True(t, errors.As(err, &validation))
}
