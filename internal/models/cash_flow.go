package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
)

const (
	FlowTypeInflow  = "inflow"
	FlowTypeOutflow = "outflow"
)

// CashFlow is an append-only ledger entry; it is not linked to assets or
// snapshots.
type CashFlow struct {
	ID             string          `json:"id" gorm:"primaryKey;column:id;type:varchar(36)"`
	FlowDate       time.Time       `json:"flow_date" gorm:"column:flow_date;not null;index"`
	FlowType       string          `json:"flow_type" gorm:"column:flow_type;type:varchar(10);not null;index"`
	SourceAccount  *string         `json:"source_account" gorm:"column:source_account;type:varchar(100)"`
	TargetAccount  *string         `json:"target_account" gorm:"column:target_account;type:varchar(100)"`
	AssetName      *string         `json:"asset_name" gorm:"column:asset_name;type:varchar(200)"`
	OriginalAmount decimal.Decimal `json:"original_amount" gorm:"column:original_amount;type:decimal(30,10);not null"`
	Currency       string          `json:"currency" gorm:"column:currency;type:varchar(3);not null"`
	CNYAmount      decimal.Decimal `json:"cny_amount" gorm:"column:cny_amount;type:decimal(30,10);not null"`
	Description    *string         `json:"description" gorm:"column:description;type:text"`
	CreatedAt      time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for the CashFlow model
func (CashFlow) TableName() string {
	return "cash_flows"
}

// BeforeCreate assigns a UUID when the caller did not.
func (c *CashFlow) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CashFlowFilter represents filters for listing cash flows
type CashFlowFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	FlowType  string
	Limit     int
	Offset    int
}

// Validate validates the cash flow data
func (c *CashFlow) Validate() error {
	if c.FlowDate.IsZero() {
		return &apperrors.ErrValidation{Field: "flow_date", Message: "is required"}
	}
	if c.FlowType != FlowTypeInflow && c.FlowType != FlowTypeOutflow {
		return &apperrors.ErrValidation{Field: "flow_type", Message: "must be 'inflow' or 'outflow'"}
	}
	if !c.OriginalAmount.IsPositive() {
		return &apperrors.ErrValidation{Field: "original_amount", Message: "must be positive"}
	}
	if !IsSupportedCurrency(c.Currency) {
		return &apperrors.ErrValidation{Field: "currency", Message: "must be one of " + strings.Join(SupportedCurrencies, ", ")}
	}
	if c.CNYAmount.IsNegative() {
		return &apperrors.ErrValidation{Field: "cny_amount", Message: "must be non-negative"}
	}
	return nil
}

// Signed returns the CNY amount with outflows negated.
func (c *CashFlow) Signed() decimal.Decimal {
	if c.FlowType == FlowTypeOutflow {
		return c.CNYAmount.Neg()
	}
	return c.CNYAmount
}
