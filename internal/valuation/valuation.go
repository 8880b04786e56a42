// Package valuation derives totals, returns, allocation and price movement
// from persisted snapshots. Every function is read-only over a Dataset.
package valuation

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Dataset is the full portfolio as loaded from storage. Values are CNY
// unless the dataset was produced by Converted.
type Dataset struct {
	Categories []models.Category
	Assets     []models.Asset
	Snapshots  []models.Snapshot
	Values     []models.AssetValue
}

// Converted returns a copy whose CNYValue fields have been passed through
// convert. Used to present the same figures in a display currency.
func (d Dataset) Converted(convert func(decimal.Decimal) decimal.Decimal) Dataset {
	out := d
	out.Values = lo.Map(d.Values, func(v models.AssetValue, _ int) models.AssetValue {
		v.CNYValue = convert(v.CNYValue)
		return v
	})
	return out
}

// OrderedSnapshots returns snapshots by date, then label.
func (d Dataset) OrderedSnapshots() []models.Snapshot {
	out := append([]models.Snapshot(nil), d.Snapshots...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SnapshotDate.Equal(out[j].SnapshotDate) {
			return out[i].Label < out[j].Label
		}
		return out[i].SnapshotDate.Before(out[j].SnapshotDate)
	})
	return out
}

// OrderedCategories returns categories by sort order, then id.
func (d Dataset) OrderedCategories() []models.Category {
	out := append([]models.Category(nil), d.Categories...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder == out[j].SortOrder {
			return out[i].ID < out[j].ID
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// Latest returns the most recent snapshot.
func (d Dataset) Latest() (models.Snapshot, bool) {
	ordered := d.OrderedSnapshots()
	if len(ordered) == 0 {
		return models.Snapshot{}, false
	}
	return ordered[len(ordered)-1], true
}

// First returns the earliest snapshot.
func (d Dataset) First() (models.Snapshot, bool) {
	ordered := d.OrderedSnapshots()
	if len(ordered) == 0 {
		return models.Snapshot{}, false
	}
	return ordered[0], true
}

// Snapshot looks a snapshot up by id.
func (d Dataset) Snapshot(id uint) (models.Snapshot, bool) {
	return lo.Find(d.Snapshots, func(s models.Snapshot) bool { return s.ID == id })
}

func (d Dataset) assetCategory() map[uint]uint {
	return lo.SliceToMap(d.Assets, func(a models.Asset) (uint, uint) { return a.ID, a.CategoryID })
}

func (d Dataset) valuesAt(snapshotID uint) []models.AssetValue {
	return lo.Filter(d.Values, func(v models.AssetValue, _ int) bool { return v.SnapshotID == snapshotID })
}

// AssetValueAt returns an asset's value at a snapshot, zero when absent.
func (d Dataset) AssetValueAt(assetID, snapshotID uint) decimal.Decimal {
	v, ok := lo.Find(d.Values, func(v models.AssetValue) bool {
		return v.AssetID == assetID && v.SnapshotID == snapshotID
	})
	if !ok {
		return decimal.Zero
	}
	return v.CNYValue
}

// CategoryTotal sums the values of a category's assets at a snapshot.
func (d Dataset) CategoryTotal(categoryID, snapshotID uint) decimal.Decimal {
	owner := d.assetCategory()
	total := decimal.Zero
	for _, v := range d.valuesAt(snapshotID) {
		if owner[v.AssetID] == categoryID {
			total = total.Add(v.CNYValue)
		}
	}
	return total
}

// PortfolioTotal re-derives the portfolio total at a snapshot from the sum of
// its category totals.
func (d Dataset) PortfolioTotal(snapshotID uint) decimal.Decimal {
	total := decimal.Zero
	for _, c := range d.Categories {
		total = total.Add(d.CategoryTotal(c.ID, snapshotID))
	}
	return total
}

// CategoryTotals lists every category's value and allocation at a snapshot.
// ROI is left zero; see CategoryROI.
func (d Dataset) CategoryTotals(snapshotID uint) []models.CategoryTotal {
	total := d.PortfolioTotal(snapshotID)
	return lo.Map(d.OrderedCategories(), func(c models.Category, _ int) models.CategoryTotal {
		value := d.CategoryTotal(c.ID, snapshotID)
		return models.CategoryTotal{
			CategoryID: c.ID,
			Name:       c.Name,
			Value:      value,
			Ratio:      Allocation(value, total),
			ROI:        decimal.Zero,
		}
	})
}

// CategoryROI is the category's return between two snapshots.
func (d Dataset) CategoryROI(categoryID, fromID, toID uint) decimal.Decimal {
	return ROI(d.CategoryTotal(categoryID, fromID), d.CategoryTotal(categoryID, toID))
}

// CategoryAllocations maps category id to its share of the snapshot total.
func (d Dataset) CategoryAllocations(snapshotID uint) map[uint]decimal.Decimal {
	total := d.PortfolioTotal(snapshotID)
	out := make(map[uint]decimal.Decimal, len(d.Categories))
	for _, c := range d.Categories {
		out[c.ID] = Allocation(d.CategoryTotal(c.ID, snapshotID), total)
	}
	return out
}

// Trend returns the portfolio total at every snapshot in date order. The
// first point's change is zero.
func (d Dataset) Trend() []models.TrendPoint {
	ordered := d.OrderedSnapshots()
	points := make([]models.TrendPoint, 0, len(ordered))
	for i, s := range ordered {
		value := d.PortfolioTotal(s.ID)
		change := decimal.Zero
		if i > 0 {
			change = value.Sub(points[i-1].Value)
		}
		points = append(points, models.TrendPoint{
			SnapshotID: s.ID,
			Label:      s.Label,
			Date:       s.SnapshotDate,
			Value:      value,
			Change:     change,
		})
	}
	return points
}

// CategorySeries returns each category's total at every snapshot, aligned
// with Trend.
func (d Dataset) CategorySeries() []models.CategorySeries {
	ordered := d.OrderedSnapshots()
	return lo.Map(d.OrderedCategories(), func(c models.Category, _ int) models.CategorySeries {
		return models.CategorySeries{
			CategoryID: c.ID,
			Name:       c.Name,
			Values: lo.Map(ordered, func(s models.Snapshot, _ int) decimal.Decimal {
				return d.CategoryTotal(c.ID, s.ID)
			}),
		}
	})
}

// ROI is the percentage change from a to b. It is zero when a is not
// positive, so a zero base never yields an infinite return.
func ROI(a, b decimal.Decimal) decimal.Decimal {
	if !a.IsPositive() {
		return decimal.Zero
	}
	return b.Sub(a).Div(a).Mul(hundred)
}

// Allocation is value's share of total, zero when total is zero.
func Allocation(value, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return value.Div(total)
}
