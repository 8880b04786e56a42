package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/repositories"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/valuation"
)

// DefaultForecastPeriods is used when a forecast request names no horizon.
const DefaultForecastPeriods = 3

type analyticsService struct {
	repo  repositories.PortfolioRepository
	rates RateService
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo repositories.PortfolioRepository, rates RateService) AnalyticsService {
	return &analyticsService{repo: repo, rates: rates}
}

// dataset loads the portfolio and converts stored CNY values to currency at
// today's rates. Percentages are unaffected by the conversion.
func (s *analyticsService) dataset(ctx context.Context, currency string) (valuation.Dataset, string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = models.BaseCurrency
	}
	if !models.IsSupportedCurrency(currency) {
		return valuation.Dataset{}, "", &apperrors.ErrValidation{Field: "currency", Message: "unsupported currency " + currency}
	}

	ds, err := loadDataset(ctx, s.repo)
	if err != nil {
		return valuation.Dataset{}, "", err
	}
	if currency == models.BaseCurrency {
		return ds, currency, nil
	}

	table, err := s.rates.CurrentRates(ctx)
	if err != nil {
		return valuation.Dataset{}, "", err
	}
	if _, ok := table.Rate(currency); !ok {
		return valuation.Dataset{}, "", &apperrors.ErrValidation{Field: "currency", Message: "no exchange rate for " + currency}
	}
	return ds.Converted(func(v decimal.Decimal) decimal.Decimal { return table.FromCNY(v, currency) }), currency, nil
}

// GetDashboardOverview summarises the latest snapshot. Category and overall
// ROI compare the latest snapshot with the first one.
func (s *analyticsService) GetDashboardOverview(ctx context.Context, currency string) (*models.DashboardOverview, error) {
	ds, currency, err := s.dataset(ctx, currency)
	if err != nil {
		return nil, err
	}

	overview := &models.DashboardOverview{
		Currency:       currency,
		TotalValue:     decimal.Zero,
		FormattedTotal: models.FormatMoney(decimal.Zero, currency),
		CategoryTotals: []models.CategoryTotal{},
		TrendData:      ds.Trend(),
		OverallROI:     decimal.Zero,
		SnapshotCount:  len(ds.Snapshots),
		AssetCount:     len(ds.Assets),
	}

	latest, ok := ds.Latest()
	if !ok {
		return overview, nil
	}
	first, _ := ds.First()

	overview.TotalValue = ds.PortfolioTotal(latest.ID)
	overview.FormattedTotal = models.FormatMoney(overview.TotalValue, currency)
	overview.LatestSnapshotLabel = latest.Label
	overview.OverallROI = valuation.ROI(ds.PortfolioTotal(first.ID), overview.TotalValue)

	overview.CategoryTotals = ds.CategoryTotals(latest.ID)
	for i := range overview.CategoryTotals {
		overview.CategoryTotals[i].ROI = ds.CategoryROI(overview.CategoryTotals[i].CategoryID, first.ID, latest.ID)
	}
	return overview, nil
}

func (s *analyticsService) GetHistory(ctx context.Context, currency string) (*models.HistoryReport, error) {
	ds, currency, err := s.dataset(ctx, currency)
	if err != nil {
		return nil, err
	}
	return &models.HistoryReport{
		Currency:   currency,
		Trend:      ds.Trend(),
		Categories: ds.CategorySeries(),
	}, nil
}

func (s *analyticsService) GetPriceChangeAnalysis(ctx context.Context, req PriceChangeRequest) (*models.PriceChangeAnalysis, error) {
	ds, currency, err := s.dataset(ctx, req.Currency)
	if err != nil {
		return nil, err
	}
	for _, id := range []uint{req.StartSnapshotID, req.EndSnapshotID} {
		if _, ok := ds.Snapshot(id); !ok {
			return nil, &apperrors.ErrNotFound{Entity: "snapshot", ID: uintString(id)}
		}
	}

	analysis := ds.PriceChange(req.StartSnapshotID, req.EndSnapshotID, valuation.PriceChangeOptions{
		Category: req.Category,
		TopN:     req.TopN,
		Currency: currency,
	})
	return &analysis, nil
}

func (s *analyticsService) GetForecast(ctx context.Context, periods int) (*models.Forecast, error) {
	if periods <= 0 {
		periods = DefaultForecastPeriods
	}
	ds, _, err := s.dataset(ctx, models.BaseCurrency)
	if err != nil {
		return nil, err
	}
	forecast := valuation.Forecast(ds.Trend(), periods)
	return &forecast, nil
}

// GetReconciliation compares stored summary totals with the sum of values.
func (s *analyticsService) GetReconciliation(ctx context.Context) ([]models.ReconciliationRow, error) {
	ds, _, err := s.dataset(ctx, models.BaseCurrency)
	if err != nil {
		return nil, err
	}
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Reconcile(summaries), nil
}
