package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/repositories"
)

type rateService struct {
	repo     repositories.ExchangeRateRepository
	provider RateProvider
	cache    *RateCache
	now      func() time.Time
	logger   *zap.Logger
}

// NewRateService creates a new rate service. Rates loaded from the
// repository are kept in cache until it expires or a write invalidates it.
func NewRateService(repo repositories.ExchangeRateRepository, provider RateProvider, cache *RateCache, logger *zap.Logger) RateService {
	if cache == nil {
		cache = NewRateCache(DefaultRateCacheTTL, nil)
	}
	return &rateService{
		repo:     repo,
		provider: provider,
		cache:    cache,
		now:      cache.now,
		logger:   logger,
	}
}

// CurrentRates returns the import defaults overlaid with the newest stored
// rate of every currency. Concurrent misses may each hit the database.
func (s *rateService) CurrentRates(ctx context.Context) (models.RateTable, error) {
	if table, ok := s.cache.Get(); ok {
		return table, nil
	}

	latest, err := s.repo.ListLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load current rates: %w", err)
	}

	table := models.DefaultImportRates()
	for _, r := range latest {
		if r.Rate.IsPositive() {
			table[r.FromCurrency] = r.Rate
		}
	}
	table[models.CurrencyCNY] = decimal.NewFromInt(1)

	s.cache.Set(table)
	return table, nil
}

func (s *rateService) UpsertExchangeRate(ctx context.Context, fromCurrency string, rate decimal.Decimal, effectiveDate time.Time) (*models.ExchangeRate, error) {
	fx := &models.ExchangeRate{
		FromCurrency:  fromCurrency,
		Rate:          rate,
		EffectiveDate: effectiveDate,
		Source:        models.RateSourceManual,
	}
	if err := s.store(ctx, fx); err != nil {
		return nil, err
	}
	return fx, nil
}

func (s *rateService) store(ctx context.Context, fx *models.ExchangeRate) error {
	fx.Normalize()
	if err := fx.Validate(); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, fx); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

func (s *rateService) ListLatest(ctx context.Context) ([]models.ExchangeRate, error) {
	return s.repo.ListLatest(ctx)
}

func (s *rateService) History(ctx context.Context, fromCurrency string, start, end *time.Time) ([]models.ExchangeRate, error) {
	if !models.IsSupportedCurrency(fromCurrency) {
		return nil, &apperrors.ErrValidation{Field: "currency", Message: "unsupported currency " + fromCurrency}
	}
	return s.repo.History(ctx, fromCurrency, start, end)
}

// Refresh pulls every supported non-CNY currency from the provider and
// stores the rates dated today.
func (s *rateService) Refresh(ctx context.Context) ([]models.ExchangeRate, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no rate provider configured")
	}

	currencies := make([]string, 0, len(models.SupportedCurrencies))
	for _, c := range models.SupportedCurrencies {
		if c != models.BaseCurrency {
			currencies = append(currencies, c)
		}
	}

	fetched, err := s.provider.FetchRates(ctx, currencies)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh rates from %s: %w", s.provider.Source(), err)
	}

	today := models.DateOnly(s.now())
	stored := make([]models.ExchangeRate, 0, len(fetched))
	for _, code := range currencies {
		r, ok := fetched[code]
		if !ok {
			s.logger.Warn("provider returned no rate", zap.String("currency", code), zap.String("source", s.provider.Source()))
			continue
		}
		fx := &models.ExchangeRate{FromCurrency: code, Rate: r, EffectiveDate: today, Source: s.provider.Source()}
		if err := s.store(ctx, fx); err != nil {
			return stored, err
		}
		stored = append(stored, *fx)
	}

	s.logger.Info("exchange rates refreshed", zap.Int("count", len(stored)), zap.String("source", s.provider.Source()))
	return stored, nil
}

func (s *rateService) InvalidateCache() {
	s.cache.Invalidate()
}
