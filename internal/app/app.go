// Package app assembles the database, repositories and services shared by
// the server and the command-line tool.
package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/config"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/db"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/handlers"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/repositories"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/services"
)

// App holds the wired services.
type App struct {
	DB    *db.DB
	Store repositories.Store

	Rates     services.RateService
	Import    services.ImportService
	Export    services.ExportService
	Portfolio services.PortfolioService
	Analytics services.AnalyticsService
	CashFlows services.CashFlowService
}

// New connects to the database, migrates the schema and builds every service.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	database, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(models.All()...); err != nil {
		database.Close()
		return nil, err
	}
	return NewWithDB(cfg, database, logger)
}

// NewWithDB builds the services over an open, migrated database.
func NewWithDB(cfg *config.Config, database *db.DB, logger *zap.Logger) (*App, error) {
	provider, err := RateProvider(cfg)
	if err != nil {
		return nil, err
	}

	store := repositories.NewStore(database)
	rates := services.NewRateService(store.ExchangeRates(), provider, services.NewRateCache(cfg.RateCacheTTL, nil), logger)

	return &App{
		DB:        database,
		Store:     store,
		Rates:     rates,
		Import:    services.NewImportService(store, rates, services.ImportOptions{Transactional: cfg.ImportTransactional}, logger),
		Export:    services.NewExportService(store, rates, nil, logger),
		Portfolio: services.NewPortfolioService(store.Portfolio()),
		Analytics: services.NewAnalyticsService(store.Portfolio(), rates),
		CashFlows: services.NewCashFlowService(store.CashFlows(), rates, logger),
	}, nil
}

// RateProvider picks the provider named by FX_PROVIDER.
func RateProvider(cfg *config.Config) (services.RateProvider, error) {
	switch cfg.FXProvider {
	case "", "static":
		return services.NewStaticRateProvider(), nil
	case "http":
		if cfg.FXAPIKey == "" {
			return nil, fmt.Errorf("FX_API_KEY is required for FX_PROVIDER=http")
		}
		return services.NewHTTPRateProvider(cfg.FXAPIKey, cfg.FXRequestsPerMinute), nil
	default:
		return nil, fmt.Errorf("unsupported FX_PROVIDER %q", cfg.FXProvider)
	}
}

// Handler returns the HTTP API.
func (a *App) Handler(logger *zap.Logger) http.Handler {
	return handlers.NewRouter(handlers.Services{
		Import:    a.Import,
		Export:    a.Export,
		Portfolio: a.Portfolio,
		Analytics: a.Analytics,
		Rates:     a.Rates,
		CashFlows: a.CashFlows,
		Health:    func(context.Context) error { return a.DB.Health() },
	}, logger)
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.DB.Close()
}
