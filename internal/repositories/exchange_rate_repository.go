package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm/clause"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/db"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

type exchangeRateRepository struct {
	db *db.DB
}

// NewExchangeRateRepository creates a new exchange rate repository
func NewExchangeRateRepository(database *db.DB) ExchangeRateRepository {
	return &exchangeRateRepository{db: database}
}

// Upsert stores a rate, replacing the one for the same pair and day.
func (r *exchangeRateRepository) Upsert(ctx context.Context, rate *models.ExchangeRate) error {
	rate.Normalize()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "from_currency"}, {Name: "to_currency"}, {Name: "effective_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "source", "updated_at"}),
	}).Create(rate).Error
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate %s: %w", rate.FromCurrency, err)
	}
	return nil
}

// ListLatest returns the newest rate for every currency.
func (r *exchangeRateRepository) ListLatest(ctx context.Context) ([]models.ExchangeRate, error) {
	var rates []models.ExchangeRate
	err := r.db.WithContext(ctx).
		Where(`effective_date = (
			SELECT MAX(latest.effective_date) FROM exchange_rates latest
			WHERE latest.from_currency = exchange_rates.from_currency
			AND latest.to_currency = exchange_rates.to_currency)`).
		Order("from_currency ASC").
		Find(&rates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list latest exchange rates: %w", err)
	}
	return rates, nil
}

// History returns a currency's rates in date order, optionally bounded.
func (r *exchangeRateRepository) History(ctx context.Context, fromCurrency string, start, end *time.Time) ([]models.ExchangeRate, error) {
	query := r.db.WithContext(ctx).Where("from_currency = ?", strings.ToUpper(fromCurrency))
	if start != nil {
		query = query.Where("effective_date >= ?", models.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("effective_date <= ?", models.DateOnly(*end))
	}

	var rates []models.ExchangeRate
	if err := query.Order("effective_date ASC").Find(&rates).Error; err != nil {
		return nil, fmt.Errorf("failed to get exchange rate history: %w", err)
	}
	return rates, nil
}
