package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/db"
	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

type portfolioRepository struct {
	db *db.DB
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(database *db.DB) PortfolioRepository {
	return &portfolioRepository{db: database}
}

func (r *portfolioRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *portfolioRepository) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.ErrNotFound{Entity: "category", ID: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// FindOrCreateCategory loads the category with the same name, creating it
// with the given attributes when missing. category.ID is set either way.
func (r *portfolioRepository) FindOrCreateCategory(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).
		Where(models.Category{Name: category.Name}).
		Attrs(models.Category{SortOrder: category.SortOrder, SuggestedRatio: category.SuggestedRatio}).
		FirstOrCreate(category).Error
	if err != nil {
		return fmt.Errorf("failed to upsert category %s: %w", category.Name, err)
	}
	return nil
}

func (r *portfolioRepository) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	if err := r.db.WithContext(ctx).Order("category_id ASC, sort_order ASC, id ASC").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

func (r *portfolioRepository) GetAsset(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.WithContext(ctx).First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.ErrNotFound{Entity: "asset", ID: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

func (r *portfolioRepository) CreateAsset(ctx context.Context, asset *models.Asset) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).
		Where("category_id = ? AND name = ?", asset.CategoryID, asset.Name).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check asset: %w", err)
	}
	if count > 0 {
		return &apperrors.ErrValidation{Field: "name", Message: fmt.Sprintf("asset %s already exists in this category", asset.Name)}
	}

	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

// FindOrCreateAsset resolves an asset by (category, name). An existing
// asset keeps its currency.
func (r *portfolioRepository) FindOrCreateAsset(ctx context.Context, asset *models.Asset) error {
	err := r.db.WithContext(ctx).
		Where(models.Asset{CategoryID: asset.CategoryID, Name: asset.Name}).
		Attrs(models.Asset{Currency: asset.Currency, SortOrder: asset.SortOrder, SuggestedRatio: asset.SuggestedRatio}).
		FirstOrCreate(asset).Error
	if err != nil {
		return fmt.Errorf("failed to upsert asset %s: %w", asset.Name, err)
	}
	return nil
}

// DeleteAsset removes the asset only; its historical values stay.
func (r *portfolioRepository) DeleteAsset(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Asset{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "asset", ID: strconv.FormatUint(uint64(id), 10)}
	}
	return nil
}

func (r *portfolioRepository) ListSnapshots(ctx context.Context) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	if err := r.db.WithContext(ctx).Order("snapshot_date ASC, label ASC").Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// FindOrCreateSnapshot reuses the snapshot with the same label.
func (r *portfolioRepository) FindOrCreateSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	err := r.db.WithContext(ctx).
		Where(models.Snapshot{Label: snapshot.Label}).
		Attrs(models.Snapshot{SnapshotDate: snapshot.SnapshotDate}).
		FirstOrCreate(snapshot).Error
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot %s: %w", snapshot.Label, err)
	}
	return nil
}

func (r *portfolioRepository) ListAssetValues(ctx context.Context, filter *models.AssetValueFilter) ([]models.AssetValue, error) {
	query := r.db.WithContext(ctx).Model(&models.AssetValue{})

	if filter != nil {
		if filter.SnapshotID != nil {
			query = query.Where("asset_values.snapshot_id = ?", *filter.SnapshotID)
		}
		if filter.CategoryID != nil {
			query = query.
				Joins("JOIN assets ON assets.id = asset_values.asset_id").
				Where("assets.category_id = ?", *filter.CategoryID)
		}
	}

	var values []models.AssetValue
	if err := query.Select("asset_values.*").Order("asset_values.snapshot_id ASC, asset_values.asset_id ASC").Find(&values).Error; err != nil {
		return nil, fmt.Errorf("failed to list asset values: %w", err)
	}
	return values, nil
}

// UpsertAssetValue writes the value for (asset, snapshot), replacing any
// previous one.
func (r *portfolioRepository) UpsertAssetValue(ctx context.Context, value *models.AssetValue) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}, {Name: "snapshot_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"original_value", "cny_value", "change_from_previous", "current_ratio"}),
	}).Create(value).Error
	if err != nil {
		return fmt.Errorf("failed to upsert asset value: %w", err)
	}
	return nil
}

func (r *portfolioRepository) ListSummaries(ctx context.Context) ([]models.PortfolioSummary, error) {
	var summaries []models.PortfolioSummary
	if err := r.db.WithContext(ctx).Order("snapshot_id ASC").Find(&summaries).Error; err != nil {
		return nil, fmt.Errorf("failed to list portfolio summaries: %w", err)
	}
	return summaries, nil
}

func (r *portfolioRepository) UpsertSummary(ctx context.Context, summary *models.PortfolioSummary) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_value", "change_from_previous", "change_from_two_previous"}),
	}).Create(summary).Error
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio summary: %w", err)
	}
	return nil
}

func (r *portfolioRepository) ClearAll(ctx context.Context) error {
	all := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []interface{}{
		&models.AssetValue{},
		&models.PortfolioSummary{},
		&models.Asset{},
		&models.Snapshot{},
		&models.Category{},
	} {
		if err := all.Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}
