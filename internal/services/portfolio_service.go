package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/repositories"
)

type portfolioService struct {
	repo repositories.PortfolioRepository
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(repo repositories.PortfolioRepository) PortfolioService {
	return &portfolioService{repo: repo}
}

func (s *portfolioService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *portfolioService) GetAssets(ctx context.Context) ([]models.Asset, error) {
	return s.repo.ListAssets(ctx)
}

// GetSnapshots returns snapshots in date order.
func (s *portfolioService) GetSnapshots(ctx context.Context) ([]models.Snapshot, error) {
	return s.repo.ListSnapshots(ctx)
}

func (s *portfolioService) GetAssetValues(ctx context.Context, filter *models.AssetValueFilter) ([]models.AssetValue, error) {
	return s.repo.ListAssetValues(ctx, filter)
}

// CreateAsset adds an asset to an existing category. Currency defaults to
// CNY and cannot change afterwards.
func (s *portfolioService) CreateAsset(ctx context.Context, asset *models.Asset) error {
	asset.Name = strings.TrimSpace(asset.Name)
	asset.Currency = strings.ToUpper(strings.TrimSpace(asset.Currency))
	if asset.Currency == "" {
		asset.Currency = models.CurrencyCNY
	}
	if err := asset.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetCategory(ctx, asset.CategoryID); err != nil {
		return err
	}
	return s.repo.CreateAsset(ctx, asset)
}

// DeleteAsset removes the asset; its historical values are kept.
func (s *portfolioService) DeleteAsset(ctx context.Context, id uint) error {
	return s.repo.DeleteAsset(ctx, id)
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
