package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

func newAnalyticsEnv(t *testing.T) (*testEnv, map[string]uint) {
	t.Helper()
	env := newTestEnv(t, ImportOptions{})
	env.importSheets(t, dataSheet(
		row("类别", "标的", "币种", "1101原始金额", "1201原始金额"),
		row("美股", "QQQ", "USD", 1000, 1500),
		row("现金", "余额宝", "CNY", 10000, 9000),
	))

	snapshots, err := env.store.Portfolio().ListSnapshots(context.Background())
	require.NoError(t, err)
	ids := map[string]uint{}
	for _, s := range snapshots {
		ids[s.Label] = s.ID
	}
	return env, ids
}

func assertDecimal(t *testing.T, expected float64, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, expected, actual.InexactFloat64(), 0.0001, msgAndArgs...)
}

func TestAnalytics_DashboardOverview(t *testing.T) {
	env, _ := newAnalyticsEnv(t)

	overview, err := env.analytics.GetDashboardOverview(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, models.CurrencyCNY, overview.Currency)
	assertDecimal(t, 19650, overview.TotalValue)
	assert.Equal(t, "1201", overview.LatestSnapshotLabel)
	assert.Equal(t, 2, overview.SnapshotCount)
	assert.Equal(t, 2, overview.AssetCount)
	assertDecimal(t, 2550.0/17100*100, overview.OverallROI)

	require.Len(t, overview.TrendData, 2)
	assertDecimal(t, 17100, overview.TrendData[0].Value)
	assertDecimal(t, 2550, overview.TrendData[1].Change)

	require.Len(t, overview.CategoryTotals, 2)
	byName := map[string]models.CategoryTotal{}
	for _, c := range overview.CategoryTotals {
		byName[c.Name] = c
	}
	assertDecimal(t, 10650, byName["美股"].Value)
	assertDecimal(t, 50, byName["美股"].ROI)
	assertDecimal(t, 10650.0/19650, byName["美股"].Ratio)
	assertDecimal(t, -10, byName["现金"].ROI)
}

func TestAnalytics_DashboardInUSD(t *testing.T) {
	env, _ := newAnalyticsEnv(t)

	overview, err := env.analytics.GetDashboardOverview(context.Background(), "usd")
	require.NoError(t, err)

	assert.Equal(t, models.CurrencyUSD, overview.Currency)
	assertDecimal(t, 19650/7.1, overview.TotalValue)
	assert.Equal(t, "$2,767.61", overview.FormattedTotal)
	assertDecimal(t, 2550.0/17100*100, overview.OverallROI, "percentages do not depend on the display currency")
}

func TestAnalytics_DashboardEmpty(t *testing.T) {
	env := newTestEnv(t, ImportOptions{})

	overview, err := env.analytics.GetDashboardOverview(context.Background(), models.CurrencyCNY)
	require.NoError(t, err)
	assert.True(t, overview.TotalValue.IsZero())
	assert.Empty(t, overview.CategoryTotals)
	assert.Empty(t, overview.TrendData)
	assert.Empty(t, overview.LatestSnapshotLabel)
}

func TestAnalytics_UnsupportedCurrency(t *testing.T) {
	env, _ := newAnalyticsEnv(t)

	_, err := env.analytics.GetDashboardOverview(context.Background(), "XYZ")
	var validationErr *apperrors.ErrValidation
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "currency", validationErr.Field)

	_, err = env.analytics.GetHistory(context.Background(), "XYZ")
	assert.True(t, errors.As(err, &validationErr))
}

func TestAnalytics_CurrencyWithoutRate(t *testing.T) {
	env, _ := newAnalyticsEnv(t)
	ctx := context.Background()

	_, err := env.analytics.GetDashboardOverview(ctx, "EUR")
	var validationErr *apperrors.ErrValidation
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "currency", validationErr.Field)
	assert.Contains(t, validationErr.Message, "EUR")

	_, err = env.rates.UpsertExchangeRate(ctx, "EUR", decimal.NewFromFloat(7.8), env.clock.Now())
	require.NoError(t, err)

	overview, err := env.analytics.GetDashboardOverview(ctx, "EUR")
	require.NoError(t, err)
	assert.Equal(t, "EUR", overview.Currency)
	assertDecimal(t, 19650/7.8, overview.TotalValue)
}

func TestAnalytics_History(t *testing.T) {
	env, _ := newAnalyticsEnv(t)

	history, err := env.analytics.GetHistory(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, history.Trend, 2)
	require.Len(t, history.Categories, 2)
	assert.Equal(t, "美股", history.Categories[0].Name)
	require.Len(t, history.Categories[0].Values, 2)
	assertDecimal(t, 7100, history.Categories[0].Values[0])
	assertDecimal(t, 10650, history.Categories[0].Values[1])
}

func TestAnalytics_PriceChange(t *testing.T) {
	env, ids := newAnalyticsEnv(t)

	analysis, err := env.analytics.GetPriceChangeAnalysis(context.Background(), PriceChangeRequest{
		StartSnapshotID: ids["1101"],
		EndSnapshotID:   ids["1201"],
	})
	require.NoError(t, err)

	assert.Equal(t, "1101", analysis.Summary.StartSnapshotLabel)
	assert.Equal(t, "1201", analysis.Summary.EndSnapshotLabel)
	assertDecimal(t, 2550, analysis.Summary.TotalChange)
	require.Len(t, analysis.TopGainers, 1)
	assert.Equal(t, "QQQ", analysis.TopGainers[0].AssetName)
	assertDecimal(t, 50, analysis.TopGainers[0].ChangePercent)
	require.Len(t, analysis.TopLosers, 1)
	assert.Equal(t, "余额宝", analysis.TopLosers[0].AssetName)
	assert.Equal(t, 1, analysis.Statistics.UpCount)
	assert.Equal(t, 1, analysis.Statistics.DownCount)

	scoped, err := env.analytics.GetPriceChangeAnalysis(context.Background(), PriceChangeRequest{
		StartSnapshotID: ids["1101"],
		EndSnapshotID:   ids["1201"],
		Category:        "现金",
	})
	require.NoError(t, err)
	require.Len(t, scoped.AssetChanges, 1)
	assert.Equal(t, "余额宝", scoped.AssetChanges[0].AssetName)
}

func TestAnalytics_PriceChangeUnknownSnapshot(t *testing.T) {
	env, ids := newAnalyticsEnv(t)

	_, err := env.analytics.GetPriceChangeAnalysis(context.Background(), PriceChangeRequest{
		StartSnapshotID: ids["1101"],
		EndSnapshotID:   9999,
	})
	var notFound *apperrors.ErrNotFound
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "9999", notFound.ID)
}

func TestAnalytics_Forecast(t *testing.T) {
	env, _ := newAnalyticsEnv(t)

	forecast, err := env.analytics.GetForecast(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, forecast.BasedOn)
	assertDecimal(t, 2550, forecast.AverageChange)
	require.Len(t, forecast.Points, DefaultForecastPeriods)
	assertDecimal(t, 22200, forecast.Points[0].Value)
	assertDecimal(t, 24750, forecast.Points[1].Value)
}

func TestAnalytics_Reconciliation(t *testing.T) {
	env, _ := newAnalyticsEnv(t)

	rows, err := env.analytics.GetReconciliation(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.True(t, r.Difference.IsZero(), "snapshot %s", r.Label)
	}
}
