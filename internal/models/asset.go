package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
)

// Asset is a single holding. Identity is (CategoryID, Name); the currency is
// fixed when the asset is created.
type Asset struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	CategoryID     uint             `json:"category_id" gorm:"column:category_id;not null;uniqueIndex:idx_assets_category_name"`
	Name           string           `json:"name" gorm:"column:name;type:varchar(200);not null;uniqueIndex:idx_assets_category_name"`
	Currency       string           `json:"currency" gorm:"column:currency;type:varchar(3);not null;default:CNY"`
	SuggestedRatio *decimal.Decimal `json:"suggested_ratio" gorm:"column:suggested_ratio;type:decimal(10,6)"`
	SortOrder      int              `json:"sort_order" gorm:"column:sort_order;not null;default:0"`
	CreatedAt      time.Time        `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}

// Validate validates the asset data
func (a *Asset) Validate() error {
	if a.CategoryID == 0 {
		return &apperrors.ErrValidation{Field: "category_id", Message: "is required"}
	}
	if strings.TrimSpace(a.Name) == "" {
		return &apperrors.ErrValidation{Field: "name", Message: "is required"}
	}
	if !IsSupportedCurrency(a.Currency) {
		return &apperrors.ErrValidation{Field: "currency", Message: "must be one of " + strings.Join(SupportedCurrencies, ", ")}
	}
	return nil
}
