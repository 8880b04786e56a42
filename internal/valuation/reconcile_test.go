package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

func TestReconcile(t *testing.T) {
	rows := fixture().Reconcile([]models.PortfolioSummary{
		{SnapshotID: 1, TotalValue: d("20000")},
		{SnapshotID: 2, TotalValue: d("20100")},
	})

	require.Len(t, rows, 3)
	assert.True(t, rows[0].Difference.IsZero())
	assert.True(t, rows[1].Difference.Equal(d("100")))
	assert.True(t, rows[2].SummaryTotal.IsZero())
	assert.True(t, rows[2].Difference.Equal(d("-20000")))
}

func TestForecast(t *testing.T) {
	trend := []models.TrendPoint{
		{Value: d("100")},
		{Value: d("110"), Change: d("10")},
		{Value: d("130"), Change: d("20")},
	}

	f := Forecast(trend, 2)
	assert.Equal(t, 3, f.BasedOn)
	assert.True(t, f.AverageChange.Equal(d("15")))
	require.Len(t, f.Points, 2)
	assert.True(t, f.Points[0].Value.Equal(d("145")))
	assert.True(t, f.Points[1].Value.Equal(d("160")))
}

func TestForecast_Degenerate(t *testing.T) {
	assert.Empty(t, Forecast(nil, 3).Points)

	flat := Forecast([]models.TrendPoint{{Value: d("50")}}, 2)
	require.Len(t, flat.Points, 2)
	assert.True(t, flat.Points[1].Value.Equal(d("50")))

	assert.Empty(t, Forecast([]models.TrendPoint{{Value: d("50")}}, 0).Points)
}
