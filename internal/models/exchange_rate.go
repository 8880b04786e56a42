package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
)

// ExchangeRate is the CNY value of one unit of FromCurrency effective on a
// given day. The newest row per FromCurrency drives live conversions.
type ExchangeRate struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	FromCurrency  string          `json:"from_currency" gorm:"column:from_currency;type:varchar(3);not null;uniqueIndex:idx_exchange_rates_pair_date"`
	ToCurrency    string          `json:"to_currency" gorm:"column:to_currency;type:varchar(3);not null;default:CNY;uniqueIndex:idx_exchange_rates_pair_date"`
	Rate          decimal.Decimal `json:"rate" gorm:"column:rate;type:decimal(20,10);not null"`
	EffectiveDate time.Time       `json:"effective_date" gorm:"column:effective_date;not null;uniqueIndex:idx_exchange_rates_pair_date"`
	Source        string          `json:"source" gorm:"column:source;type:varchar(50);not null;default:manual"`
	CreatedAt     time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the ExchangeRate model
func (ExchangeRate) TableName() string {
	return "exchange_rates"
}

// Common rate sources
const (
	RateSourceManual       = "manual"
	RateSourceImport       = "import"
	RateSourceStatic       = "static"
	RateSourceExchangeRate = "exchangerate-api"
)

// Validate validates the exchange rate data
func (fx *ExchangeRate) Validate() error {
	if fx.FromCurrency == "" {
		return &apperrors.ErrValidation{Field: "from_currency", Message: "is required"}
	}
	if !IsSupportedCurrency(fx.FromCurrency) {
		return &apperrors.ErrValidation{Field: "from_currency", Message: "must be one of " + strings.Join(SupportedCurrencies, ", ")}
	}
	if fx.ToCurrency != BaseCurrency {
		return &apperrors.ErrValidation{Field: "to_currency", Message: "must be " + BaseCurrency}
	}
	if fx.FromCurrency == fx.ToCurrency {
		return &apperrors.ErrValidation{Field: "from_currency", Message: "must differ from to_currency"}
	}
	if !fx.Rate.IsPositive() {
		return &apperrors.ErrValidation{Field: "rate", Message: "must be positive"}
	}
	if fx.EffectiveDate.IsZero() {
		return &apperrors.ErrValidation{Field: "effective_date", Message: "is required"}
	}
	return nil
}

// Normalize upper-cases codes, fills the base currency and truncates the
// effective date to a UTC day.
func (fx *ExchangeRate) Normalize() {
	fx.FromCurrency = strings.ToUpper(strings.TrimSpace(fx.FromCurrency))
	if fx.ToCurrency == "" {
		fx.ToCurrency = BaseCurrency
	}
	fx.ToCurrency = strings.ToUpper(fx.ToCurrency)
	if !fx.EffectiveDate.IsZero() {
		fx.EffectiveDate = DateOnly(fx.EffectiveDate)
	}
	if fx.Source == "" {
		fx.Source = RateSourceManual
	}
}

// DateOnly truncates t to midnight UTC of the same calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
