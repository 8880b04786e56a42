package services

import (
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/spreadsheet"
)

// ImportPlan is everything an import will write, computed before any
// existing data is touched.
type ImportPlan struct {
	Categories []PlannedCategory
	Snapshots  []PlannedSnapshot
	Assets     []*PlannedAsset
	Summaries  []PlannedSummary
}

// PlannedCategory is a category in first-seen order.
type PlannedCategory struct {
	Name      string
	SortOrder int
}

// PlannedSnapshot is a snapshot label with its resolved date.
type PlannedSnapshot struct {
	Label string
	Date  time.Time
}

// PlannedAsset is one (category, name) pair and its values.
type PlannedAsset struct {
	Category  string
	Name      string
	Currency  string
	SortOrder int
	Values    []PlannedValue
}

// PlannedValue is an asset's value at one snapshot.
type PlannedValue struct {
	Label              string
	OriginalValue      decimal.Decimal
	CNYValue           decimal.Decimal
	ChangeFromPrevious *decimal.Decimal
	CurrentRatio       *decimal.Decimal
}

// PlannedSummary is the portfolio total at one snapshot.
type PlannedSummary struct {
	Label                 string
	TotalValue            decimal.Decimal
	ChangeFromPrevious    *decimal.Decimal
	ChangeFromTwoPrevious *decimal.Decimal
}

// Stats counts the records the plan will write.
func (p *ImportPlan) Stats() *models.ImportStats {
	values := 0
	for _, a := range p.Assets {
		values += len(a.Values)
	}
	return &models.ImportStats{
		Categories: len(p.Categories),
		Assets:     len(p.Assets),
		Snapshots:  len(p.Snapshots),
		Values:     values,
		Summaries:  len(p.Summaries),
	}
}

// BuildPlan interprets classified rows against the header layout. Rates
// convert between native amounts and CNY; now anchors snapshot years.
func BuildPlan(layout spreadsheet.Layout, rows []spreadsheet.ParsedRow, rates models.RateTable, now time.Time) (*ImportPlan, error) {
	plan := &ImportPlan{}
	if len(layout.Columns) == 0 {
		return plan, nil
	}

	for _, col := range layout.Columns {
		date, err := spreadsheet.ResolveSnapshotDate(col.Label, now)
		if err != nil {
			return nil, err
		}
		plan.Snapshots = append(plan.Snapshots, PlannedSnapshot{Label: col.Label, Date: date})
	}

	type assetKey struct{ category, name string }
	assets := make(map[assetKey]*PlannedAsset)
	seenCategory := make(map[string]bool)
	addCategory := func(name string) {
		if !seenCategory[name] {
			seenCategory[name] = true
			plan.Categories = append(plan.Categories, PlannedCategory{Name: name, SortOrder: len(plan.Categories)})
		}
	}

	var totalRow *spreadsheet.TotalRow
	for _, row := range rows {
		switch r := row.(type) {
		case *spreadsheet.CategoryHeader:
			addCategory(r.Name)
		case *spreadsheet.TotalRow:
			if totalRow == nil {
				totalRow = r
			}
		case *spreadsheet.AssetRow:
			addCategory(r.Category)
			key := assetKey{r.Category, r.Name}
			asset, ok := assets[key]
			if !ok {
				asset = &PlannedAsset{
					Category:  r.Category,
					Name:      r.Name,
					Currency:  spreadsheet.ResolveCurrency(r.Cells, layout.CurrencyCol, r.Name),
					SortOrder: len(plan.Assets),
				}
				assets[key] = asset
				plan.Assets = append(plan.Assets, asset)
			}
			for _, col := range layout.Columns {
				if v, ok := assetValue(r.Cells, col, asset.Currency, rates); ok {
					asset.setValue(v)
				}
			}
		}
	}

	plan.Summaries = summaries(plan, layout, totalRow)
	return plan, nil
}

// assetValue applies the value rules for one cell group. Rows where both the
// native and the CNY amount are zero carry no data for the snapshot.
func assetValue(cells []string, col spreadsheet.SnapshotColumns, currency string, rates models.RateTable) (PlannedValue, bool) {
	var original, cny decimal.Decimal

	if col.HasOriginal() {
		original = spreadsheet.ParseAmount(cellAt(cells, col.OriginalCol))
		if col.HasDistinctValue() {
			cny = spreadsheet.ParseAmount(cellAt(cells, col.ValueCol))
		}
		if cny.IsZero() && !original.IsZero() {
			cny = rates.ToCNY(original, currency)
		}
		if currency == models.CurrencyCNY {
			cny = original
		}
	} else {
		cny = spreadsheet.ParseAmount(cellAt(cells, col.ValueCol))
		original = cny
		if currency != models.CurrencyCNY {
			original = rates.FromCNY(cny, currency)
		}
	}

	if original.IsZero() && cny.IsZero() {
		return PlannedValue{}, false
	}

	v := PlannedValue{Label: col.Label, OriginalValue: original, CNYValue: cny}
	if col.ChangeCol >= 0 {
		if change, ok := spreadsheet.ParseOptionalAmount(cellAt(cells, col.ChangeCol)); ok {
			v.ChangeFromPrevious = &change
		}
	}
	return v, true
}

func (a *PlannedAsset) setValue(v PlannedValue) {
	for i := range a.Values {
		if a.Values[i].Label == v.Label {
			a.Values[i] = v
			return
		}
	}
	a.Values = append(a.Values, v)
}

// summaries totals every snapshot, fills each value's share of its snapshot
// and chains period changes in date order.
func summaries(plan *ImportPlan, layout spreadsheet.Layout, totalRow *spreadsheet.TotalRow) []PlannedSummary {
	derived := make(map[string]decimal.Decimal, len(plan.Snapshots))
	for _, a := range plan.Assets {
		for _, v := range a.Values {
			derived[v.Label] = derived[v.Label].Add(v.CNYValue)
		}
	}

	for _, a := range plan.Assets {
		for i := range a.Values {
			total := derived[a.Values[i].Label]
			if total.IsZero() {
				continue
			}
			ratio := a.Values[i].CNYValue.Div(total)
			a.Values[i].CurrentRatio = &ratio
		}
	}

	byLabel := lo.KeyBy(layout.Columns, func(c spreadsheet.SnapshotColumns) string { return c.Label })
	ordered := append([]PlannedSnapshot(nil), plan.Snapshots...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	out := make([]PlannedSummary, 0, len(ordered))
	for i, s := range ordered {
		total := derived[s.Label]
		if totalRow != nil {
			if v, ok := spreadsheet.ParseOptionalAmount(cellAt(totalRow.Cells, byLabel[s.Label].ValueCol)); ok && !v.IsZero() {
				total = v
			}
		}
		summary := PlannedSummary{Label: s.Label, TotalValue: total}
		if i >= 1 {
			change := total.Sub(out[i-1].TotalValue)
			summary.ChangeFromPrevious = &change
		}
		if i >= 2 {
			change := total.Sub(out[i-2].TotalValue)
			summary.ChangeFromTwoPrevious = &change
		}
		out = append(out, summary)
	}
	return out
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}
