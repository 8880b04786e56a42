package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is one category's value at the latest snapshot.
type CategoryTotal struct {
	CategoryID uint            `json:"category_id"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	ROI        decimal.Decimal `json:"roi"`
	Ratio      decimal.Decimal `json:"ratio"`
}

// TrendPoint is the portfolio total at one snapshot.
type TrendPoint struct {
	SnapshotID uint            `json:"snapshot_id"`
	Label      string          `json:"label"`
	Date       time.Time       `json:"date"`
	Value      decimal.Decimal `json:"value"`
	Change     decimal.Decimal `json:"change"`
}

// DashboardOverview is the landing page summary.
type DashboardOverview struct {
	Currency            string          `json:"currency"`
	TotalValue          decimal.Decimal `json:"total_value"`
	FormattedTotal      string          `json:"formatted_total"`
	LatestSnapshotLabel string          `json:"latest_snapshot_label"`
	CategoryTotals      []CategoryTotal `json:"category_totals"`
	TrendData           []TrendPoint    `json:"trend_data"`
	OverallROI          decimal.Decimal `json:"overall_roi"`
	SnapshotCount       int             `json:"snapshot_count"`
	AssetCount          int             `json:"asset_count"`
}

// CategorySeries is one category's value across snapshots.
type CategorySeries struct {
	CategoryID uint              `json:"category_id"`
	Name       string            `json:"name"`
	Values     []decimal.Decimal `json:"values"`
}

// HistoryReport carries the full time series.
type HistoryReport struct {
	Currency   string           `json:"currency"`
	Trend      []TrendPoint     `json:"trend"`
	Categories []CategorySeries `json:"categories"`
}

// PriceChangeSummary aggregates a price change analysis.
type PriceChangeSummary struct {
	StartSnapshotLabel string          `json:"start_snapshot_label"`
	EndSnapshotLabel   string          `json:"end_snapshot_label"`
	Currency           string          `json:"currency"`
	StartTotal         decimal.Decimal `json:"start_total"`
	EndTotal           decimal.Decimal `json:"end_total"`
	TotalChange        decimal.Decimal `json:"total_change"`
	TotalChangePercent decimal.Decimal `json:"total_change_percent"`
}

// AssetChange is one asset's movement between two snapshots.
type AssetChange struct {
	AssetID       uint            `json:"asset_id"`
	AssetName     string          `json:"asset_name"`
	CategoryName  string          `json:"category_name"`
	StartValue    decimal.Decimal `json:"start_value"`
	EndValue      decimal.Decimal `json:"end_value"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Direction     string          `json:"direction"`
}

// Directions of an AssetChange
const (
	DirectionUp        = "up"
	DirectionDown      = "down"
	DirectionUnchanged = "unchanged"
)

// PriceChangeStatistics counts assets by direction.
type PriceChangeStatistics struct {
	UpCount              int             `json:"up_count"`
	DownCount            int             `json:"down_count"`
	UnchangedCount       int             `json:"unchanged_count"`
	AverageChangePercent decimal.Decimal `json:"average_change_percent"`
	MaxGainPercent       decimal.Decimal `json:"max_gain_percent"`
	MaxLossPercent       decimal.Decimal `json:"max_loss_percent"`
}

// PriceChangeAnalysis compares every asset between two snapshots.
type PriceChangeAnalysis struct {
	Summary      PriceChangeSummary    `json:"summary"`
	AssetChanges []AssetChange         `json:"asset_changes"`
	TopGainers   []AssetChange         `json:"top_gainers"`
	TopLosers    []AssetChange         `json:"top_losers"`
	Statistics   PriceChangeStatistics `json:"statistics"`
}

// ForecastPoint is a projected portfolio total.
type ForecastPoint struct {
	Step  int             `json:"step"`
	Value decimal.Decimal `json:"value"`
}

// Forecast projects future totals from the historical trend.
type Forecast struct {
	BasedOn       int             `json:"based_on"`
	AverageChange decimal.Decimal `json:"average_change"`
	Points        []ForecastPoint `json:"points"`
}

// ReconciliationRow compares the stored summary total with the sum of values.
type ReconciliationRow struct {
	SnapshotID   uint            `json:"snapshot_id"`
	Label        string          `json:"label"`
	SummaryTotal decimal.Decimal `json:"summary_total"`
	DerivedTotal decimal.Decimal `json:"derived_total"`
	Difference   decimal.Decimal `json:"difference"`
}
