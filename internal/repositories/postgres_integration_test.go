//go:build integration

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

func TestPostgres_PortfolioRoundTrip(t *testing.T) {
	s := NewStore(dbtest.NewPostgres(t))
	ctx := context.Background()
	repo := s.Portfolio()

	category, asset, snapshot := seedPortfolio(t, repo)
	require.NotZero(t, category.ID)

	require.NoError(t, repo.UpsertAssetValue(ctx, &models.AssetValue{
		AssetID: asset.ID, SnapshotID: snapshot.ID,
		OriginalValue: decimal.NewFromInt(1000), CNYValue: decimal.NewFromInt(7100),
	}))
	require.NoError(t, repo.UpsertAssetValue(ctx, &models.AssetValue{
		AssetID: asset.ID, SnapshotID: snapshot.ID,
		OriginalValue: decimal.NewFromInt(1000), CNYValue: decimal.NewFromInt(7200),
	}))

	values, err := repo.ListAssetValues(ctx, &models.AssetValueFilter{CategoryID: &category.ID})
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.True(t, values[0].CNYValue.Equal(decimal.NewFromInt(7200)))

	rates := s.ExchangeRates()
	require.NoError(t, rates.Upsert(ctx, &models.ExchangeRate{FromCurrency: "USD", Rate: decimal.NewFromFloat(7.1), EffectiveDate: time.Now()}))
	latest, err := rates.ListLatest(ctx)
	require.NoError(t, err)
	assert.Len(t, latest, 1)

	require.NoError(t, repo.ClearAll(ctx))
	assets, err := repo.ListAssets(ctx)
	require.NoError(t, err)
	assert.Empty(t, assets)
}
