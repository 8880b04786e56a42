package services

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

// RateProvider fetches current CNY rates from an external source
type RateProvider interface {
	// FetchRates returns the CNY value of one unit of each currency.
	FetchRates(ctx context.Context, currencies []string) (map[string]decimal.Decimal, error)
	Source() string
}

// RateService defines the interface for live exchange rate operations
type RateService interface {
	CurrentRates(ctx context.Context) (models.RateTable, error)
	UpsertExchangeRate(ctx context.Context, fromCurrency string, rate decimal.Decimal, effectiveDate time.Time) (*models.ExchangeRate, error)
	ListLatest(ctx context.Context) ([]models.ExchangeRate, error)
	History(ctx context.Context, fromCurrency string, start, end *time.Time) ([]models.ExchangeRate, error)
	Refresh(ctx context.Context) ([]models.ExchangeRate, error)
	InvalidateCache()
}

// ImportService defines the interface for workbook import
type ImportService interface {
	ImportWorkbook(ctx context.Context, r io.Reader) (*models.ImportResult, error)
}

// ExportService defines the interface for workbook export
type ExportService interface {
	ExportWorkbook(ctx context.Context) (*models.ExportFile, error)
}

// PortfolioService defines the interface for category, asset and snapshot operations
type PortfolioService interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetAssets(ctx context.Context) ([]models.Asset, error)
	GetSnapshots(ctx context.Context) ([]models.Snapshot, error)
	GetAssetValues(ctx context.Context, filter *models.AssetValueFilter) ([]models.AssetValue, error)
	CreateAsset(ctx context.Context, asset *models.Asset) error
	DeleteAsset(ctx context.Context, id uint) error
}

// AnalyticsService defines the interface for dashboard and analysis views
type AnalyticsService interface {
	GetDashboardOverview(ctx context.Context, currency string) (*models.DashboardOverview, error)
	GetHistory(ctx context.Context, currency string) (*models.HistoryReport, error)
	GetPriceChangeAnalysis(ctx context.Context, req PriceChangeRequest) (*models.PriceChangeAnalysis, error)
	GetForecast(ctx context.Context, periods int) (*models.Forecast, error)
	GetReconciliation(ctx context.Context) ([]models.ReconciliationRow, error)
}

// CashFlowService defines the interface for cash flow operations
type CashFlowService interface {
	AddCashFlow(ctx context.Context, flow *models.CashFlow) error
	DeleteCashFlow(ctx context.Context, id string) error
	ListCashFlows(ctx context.Context, filter *models.CashFlowFilter) ([]models.CashFlow, error)
}

// PriceChangeRequest selects the snapshots and scope of a price change analysis.
type PriceChangeRequest struct {
	StartSnapshotID uint
	EndSnapshotID   uint
	Currency        string
	Category        string
	TopN            int
}
