package repositories

import (
	"context"
	"time"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

// PortfolioRepository defines the interface for category, asset, snapshot,
// value and summary data operations
type PortfolioRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	FindOrCreateCategory(ctx context.Context, category *models.Category) error

	ListAssets(ctx context.Context) ([]models.Asset, error)
	GetAsset(ctx context.Context, id uint) (*models.Asset, error)
	CreateAsset(ctx context.Context, asset *models.Asset) error
	FindOrCreateAsset(ctx context.Context, asset *models.Asset) error
	DeleteAsset(ctx context.Context, id uint) error

	ListSnapshots(ctx context.Context) ([]models.Snapshot, error)
	FindOrCreateSnapshot(ctx context.Context, snapshot *models.Snapshot) error

	ListAssetValues(ctx context.Context, filter *models.AssetValueFilter) ([]models.AssetValue, error)
	UpsertAssetValue(ctx context.Context, value *models.AssetValue) error

	ListSummaries(ctx context.Context) ([]models.PortfolioSummary, error)
	UpsertSummary(ctx context.Context, summary *models.PortfolioSummary) error

	// ClearAll removes every asset value, summary, asset, snapshot and
	// category. Cash flows and exchange rates are kept.
	ClearAll(ctx context.Context) error
}

// ExchangeRateRepository defines the interface for exchange rate data operations
type ExchangeRateRepository interface {
	Upsert(ctx context.Context, rate *models.ExchangeRate) error
	ListLatest(ctx context.Context) ([]models.ExchangeRate, error)
	History(ctx context.Context, fromCurrency string, start, end *time.Time) ([]models.ExchangeRate, error)
}

// CashFlowRepository defines the interface for cash flow data operations
type CashFlowRepository interface {
	Create(ctx context.Context, flow *models.CashFlow) error
	GetByID(ctx context.Context, id string) (*models.CashFlow, error)
	List(ctx context.Context, filter *models.CashFlowFilter) ([]models.CashFlow, error)
	Delete(ctx context.Context, id string) error
}

// Store groups the repositories that share one connection, so a caller can
// run several of them inside a single transaction.
type Store interface {
	Portfolio() PortfolioRepository
	ExchangeRates() ExchangeRateRepository
	CashFlows() CashFlowRepository
	// Transaction runs fn against a Store bound to one database transaction.
	Transaction(ctx context.Context, fn func(Store) error) error
}
