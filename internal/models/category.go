package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
)

// Recognised category labels, in the order they usually appear in the sheet.
var KnownCategories = []string{"股票/基金", "美股", "A+H股", "日股", "黄金", "虚拟货币", "现金"}

// IsKnownCategory reports whether name is one of the recognised labels.
func IsKnownCategory(name string) bool {
	for _, c := range KnownCategories {
		if c == name {
			return true
		}
	}
	return false
}

// Category is a top-level asset grouping.
type Category struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	Name           string           `json:"name" gorm:"column:name;type:varchar(100);not null;uniqueIndex"`
	SuggestedRatio *decimal.Decimal `json:"suggested_ratio" gorm:"column:suggested_ratio;type:decimal(10,6)"`
	SortOrder      int              `json:"sort_order" gorm:"column:sort_order;not null;default:0"`
	CreatedAt      time.Time        `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Validate validates the category data
func (c *Category) Validate() error {
	if c.Name == "" {
		return &apperrors.ErrValidation{Field: "name", Message: "is required"}
	}
	if c.SuggestedRatio != nil && (c.SuggestedRatio.IsNegative() || c.SuggestedRatio.GreaterThan(decimal.NewFromInt(1))) {
		return &apperrors.ErrValidation{Field: "suggested_ratio", Message: "must be between 0 and 1"}
	}
	return nil
}
