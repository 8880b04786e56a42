package valuation

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

// DefaultTopN is the number of gainers and losers reported.
const DefaultTopN = 5

// PriceChangeOptions narrows a price change analysis.
type PriceChangeOptions struct {
	// Category restricts the analysis to one category name. Empty means all.
	Category string
	TopN     int
	Currency string
}

// PriceChange compares every asset between two arbitrary snapshots. Assets
// with no value at either snapshot are left out.
func (d Dataset) PriceChange(startID, endID uint, opts PriceChangeOptions) models.PriceChangeAnalysis {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	categoryNames := lo.SliceToMap(d.Categories, func(c models.Category) (uint, string) { return c.ID, c.Name })
	start, _ := d.Snapshot(startID)
	end, _ := d.Snapshot(endID)

	changes := make([]models.AssetChange, 0, len(d.Assets))
	for _, a := range d.orderedAssets() {
		category := categoryNames[a.CategoryID]
		if opts.Category != "" && category != opts.Category {
			continue
		}
		if !d.hasValue(a.ID, startID) && !d.hasValue(a.ID, endID) {
			continue
		}
		startValue := d.AssetValueAt(a.ID, startID)
		endValue := d.AssetValueAt(a.ID, endID)
		change := endValue.Sub(startValue)
		changes = append(changes, models.AssetChange{
			AssetID:       a.ID,
			AssetName:     a.Name,
			CategoryName:  category,
			StartValue:    startValue,
			EndValue:      endValue,
			Change:        change,
			ChangePercent: changePercent(startValue, change),
			Direction:     direction(change),
		})
	}

	startTotal := decimal.Zero
	endTotal := decimal.Zero
	for _, c := range changes {
		startTotal = startTotal.Add(c.StartValue)
		endTotal = endTotal.Add(c.EndValue)
	}

	return models.PriceChangeAnalysis{
		Summary: models.PriceChangeSummary{
			StartSnapshotLabel: start.Label,
			EndSnapshotLabel:   end.Label,
			Currency:           opts.Currency,
			StartTotal:         startTotal,
			EndTotal:           endTotal,
			TotalChange:        endTotal.Sub(startTotal),
			TotalChangePercent: ROI(startTotal, endTotal),
		},
		AssetChanges: changes,
		TopGainers:   topGainers(changes, topN),
		TopLosers:    topLosers(changes, topN),
		Statistics:   statistics(changes),
	}
}

func (d Dataset) hasValue(assetID, snapshotID uint) bool {
	return lo.ContainsBy(d.Values, func(v models.AssetValue) bool {
		return v.AssetID == assetID && v.SnapshotID == snapshotID
	})
}

func (d Dataset) orderedAssets() []models.Asset {
	order := lo.SliceToMap(d.Categories, func(c models.Category) (uint, int) { return c.ID, c.SortOrder })
	out := append([]models.Asset(nil), d.Assets...)
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := order[out[i].CategoryID], order[out[j].CategoryID]
		if ci != cj {
			return ci < cj
		}
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func changePercent(start, change decimal.Decimal) decimal.Decimal {
	if start.IsZero() {
		return decimal.Zero
	}
	return change.Div(start).Mul(hundred)
}

func direction(change decimal.Decimal) string {
	switch change.Sign() {
	case 1:
		return models.DirectionUp
	case -1:
		return models.DirectionDown
	default:
		return models.DirectionUnchanged
	}
}

func topGainers(changes []models.AssetChange, n int) []models.AssetChange {
	up := lo.Filter(changes, func(c models.AssetChange, _ int) bool { return c.Change.IsPositive() })
	sort.SliceStable(up, func(i, j int) bool { return up[i].Change.GreaterThan(up[j].Change) })
	return lo.Subset(up, 0, uint(n))
}

func topLosers(changes []models.AssetChange, n int) []models.AssetChange {
	down := lo.Filter(changes, func(c models.AssetChange, _ int) bool { return c.Change.IsNegative() })
	sort.SliceStable(down, func(i, j int) bool { return down[i].Change.LessThan(down[j].Change) })
	return lo.Subset(down, 0, uint(n))
}

func statistics(changes []models.AssetChange) models.PriceChangeStatistics {
	stats := models.PriceChangeStatistics{
		AverageChangePercent: decimal.Zero,
		MaxGainPercent:       decimal.Zero,
		MaxLossPercent:       decimal.Zero,
	}
	if len(changes) == 0 {
		return stats
	}

	sum := decimal.Zero
	for _, c := range changes {
		switch c.Direction {
		case models.DirectionUp:
			stats.UpCount++
		case models.DirectionDown:
			stats.DownCount++
		default:
			stats.UnchangedCount++
		}
		sum = sum.Add(c.ChangePercent)
		if c.ChangePercent.GreaterThan(stats.MaxGainPercent) {
			stats.MaxGainPercent = c.ChangePercent
		}
		if c.ChangePercent.LessThan(stats.MaxLossPercent) {
			stats.MaxLossPercent = c.ChangePercent
		}
	}
	stats.AverageChangePercent = sum.Div(decimal.NewFromInt(int64(len(changes))))
	return stats
}
