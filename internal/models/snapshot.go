package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is a labelled point-in-time capture. Label is MMDD; the date is
// derived from it at import time.
type Snapshot struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SnapshotDate time.Time `json:"snapshot_date" gorm:"column:snapshot_date;not null;index"`
	Label        string    `json:"label" gorm:"column:label;type:varchar(4);not null;uniqueIndex"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for the Snapshot model
func (Snapshot) TableName() string {
	return "snapshots"
}

// AssetValue is the value of one asset at one snapshot. CNYValue is fixed at
// write time with the rate in force then.
type AssetValue struct {
	ID                 uint             `json:"id" gorm:"primaryKey"`
	AssetID            uint             `json:"asset_id" gorm:"column:asset_id;not null;uniqueIndex:idx_asset_values_asset_snapshot"`
	SnapshotID         uint             `json:"snapshot_id" gorm:"column:snapshot_id;not null;uniqueIndex:idx_asset_values_asset_snapshot;index"`
	OriginalValue      decimal.Decimal  `json:"original_value" gorm:"column:original_value;type:decimal(30,10);not null"`
	CNYValue           decimal.Decimal  `json:"cny_value" gorm:"column:cny_value;type:decimal(30,10);not null"`
	ChangeFromPrevious *decimal.Decimal `json:"change_from_previous" gorm:"column:change_from_previous;type:decimal(30,10)"`
	CurrentRatio       *decimal.Decimal `json:"current_ratio" gorm:"column:current_ratio;type:decimal(20,10)"`
}

// TableName returns the table name for the AssetValue model
func (AssetValue) TableName() string {
	return "asset_values"
}

// AssetValueFilter narrows GetAssetValues.
type AssetValueFilter struct {
	CategoryID *uint
	SnapshotID *uint
}

// PortfolioSummary is the grand total at a snapshot, kept independently of
// the per-asset values as a cross-check.
type PortfolioSummary struct {
	ID                    uint             `json:"id" gorm:"primaryKey"`
	SnapshotID            uint             `json:"snapshot_id" gorm:"column:snapshot_id;not null;uniqueIndex"`
	TotalValue            decimal.Decimal  `json:"total_value" gorm:"column:total_value;type:decimal(30,10);not null"`
	ChangeFromPrevious    *decimal.Decimal `json:"change_from_previous" gorm:"column:change_from_previous;type:decimal(30,10)"`
	ChangeFromTwoPrevious *decimal.Decimal `json:"change_from_two_previous" gorm:"column:change_from_two_previous;type:decimal(30,10)"`
}

// TableName returns the table name for the PortfolioSummary model
func (PortfolioSummary) TableName() string {
	return "portfolio_summaries"
}
