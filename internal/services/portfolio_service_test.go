package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

func TestPortfolioService_CreateAsset(t *testing.T) {
	env := newTestEnv(t, ImportOptions{})
	env.importSheets(t, portfolioSheet())
	ctx := context.Background()
	svc := NewPortfolioService(env.store.Portfolio())

	categories, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, categories)
	cash := categories[len(categories)-1]
	require.Equal(t, "现金", cash.Name)

	asset := &models.Asset{CategoryID: cash.ID, Name: "  招行活期 ", Currency: " hkd"}
	require.NoError(t, svc.CreateAsset(ctx, asset))
	assert.NotZero(t, asset.ID)
	assert.Equal(t, "招行活期", asset.Name)
	assert.Equal(t, models.CurrencyHKD, asset.Currency)

	plain := &models.Asset{CategoryID: cash.ID, Name: "零钱"}
	require.NoError(t, svc.CreateAsset(ctx, plain))
	assert.Equal(t, models.CurrencyCNY, plain.Currency)

	assets, err := svc.GetAssets(ctx)
	require.NoError(t, err)
	assert.Len(t, assets, 5)
}

func TestPortfolioService_CreateAssetRejects(t *testing.T) {
	env := newTestEnv(t, ImportOptions{})
	env.importSheets(t, portfolioSheet())
	ctx := context.Background()
	svc := NewPortfolioService(env.store.Portfolio())

	categories, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	stocks := categories[0]

	tests := []struct {
		name  string
		asset models.Asset
		field string
	}{
		{"blank name", models.Asset{CategoryID: stocks.ID, Name: "  "}, "name"},
		{"unsupported currency", models.Asset{CategoryID: stocks.ID, Name: "VOO", Currency: "XYZ"}, "currency"},
		{"missing category", models.Asset{Name: "VOO"}, "category_id"},
		{"duplicate", models.Asset{CategoryID: stocks.ID, Name: "QQQ", Currency: "USD"}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := tt.asset
			err := svc.CreateAsset(ctx, &asset)
			var validationErr *apperrors.ErrValidation
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	err = svc.CreateAsset(ctx, &models.Asset{CategoryID: 9999, Name: "VOO"})
	var notFound *apperrors.ErrNotFound
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "category", notFound.Entity)
}

func TestPortfolioService_DeleteAssetKeepsValues(t *testing.T) {
	env := newTestEnv(t, ImportOptions{})
	env.importSheets(t, portfolioSheet())
	ctx := context.Background()
	svc := NewPortfolioService(env.store.Portfolio())

	assets, err := svc.GetAssets(ctx)
	require.NoError(t, err)
	var qqq models.Asset
	for _, a := range assets {
		if a.Name == "QQQ" {
			qqq = a
		}
	}
	require.NotZero(t, qqq.ID)

	require.NoError(t, svc.DeleteAsset(ctx, qqq.ID))

	values, err := svc.GetAssetValues(ctx, nil)
	require.NoError(t, err)
	kept := 0
	for _, v := range values {
		if v.AssetID == qqq.ID {
			kept++
		}
	}
	assert.Equal(t, 2, kept)

	err = svc.DeleteAsset(ctx, qqq.ID)
	var notFound *apperrors.ErrNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestPortfolioService_SnapshotsInDateOrder(t *testing.T) {
	env := newTestEnv(t, ImportOptions{})
	env.importSheets(t, dataSheet(
		row("类别", "标的", "0105原始金额", "1225原始金额"),
		row("现金", "余额宝", 100, 200),
	))

	snapshots, err := NewPortfolioService(env.store.Portfolio()).GetSnapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "1225", snapshots[0].Label)
	assert.Equal(t, "0105", snapshots[1].Label)
}
