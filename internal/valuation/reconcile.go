package valuation

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

// Reconcile compares stored summary totals with totals re-derived from
// asset values, one row per snapshot in date order. Snapshots without a
// summary report a zero summary total. Discrepancies are reported, never
// corrected.
func (d Dataset) Reconcile(summaries []models.PortfolioSummary) []models.ReconciliationRow {
	bySnapshot := lo.KeyBy(summaries, func(s models.PortfolioSummary) uint { return s.SnapshotID })
	return lo.Map(d.OrderedSnapshots(), func(s models.Snapshot, _ int) models.ReconciliationRow {
		summaryTotal := decimal.Zero
		if summary, ok := bySnapshot[s.ID]; ok {
			summaryTotal = summary.TotalValue
		}
		derived := d.PortfolioTotal(s.ID)
		return models.ReconciliationRow{
			SnapshotID:   s.ID,
			Label:        s.Label,
			SummaryTotal: summaryTotal,
			DerivedTotal: derived,
			Difference:   summaryTotal.Sub(derived),
		}
	})
}

// Forecast extends the trend by periods steps using the mean change between
// consecutive snapshots.
func Forecast(trend []models.TrendPoint, periods int) models.Forecast {
	out := models.Forecast{BasedOn: len(trend), AverageChange: decimal.Zero, Points: []models.ForecastPoint{}}
	if len(trend) == 0 || periods <= 0 {
		return out
	}

	if len(trend) > 1 {
		sum := decimal.Zero
		for _, p := range trend[1:] {
			sum = sum.Add(p.Change)
		}
		out.AverageChange = sum.Div(decimal.NewFromInt(int64(len(trend) - 1)))
	}

	last := trend[len(trend)-1].Value
	for step := 1; step <= periods; step++ {
		out.Points = append(out.Points, models.ForecastPoint{
			Step:  step,
			Value: last.Add(out.AverageChange.Mul(decimal.NewFromInt(int64(step)))),
		})
	}
	return out
}
