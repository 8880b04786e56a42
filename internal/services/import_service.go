package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/repositories"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/spreadsheet"
)

// Messages returned to the uploader
const (
	importFailedPrefix = "导入失败: "
	importNoSnapshots  = "未找到快照列，未导入任何数据"
)

// ImportOptions tunes ReplaceImport.
type ImportOptions struct {
	// Transactional wraps the clear-and-rebuild in one database transaction.
	// Off by default: a failure part way leaves a partially rebuilt dataset.
	Transactional bool
	// Now is the import clock. Nil means time.Now.
	Now func() time.Time
}

type importService struct {
	store  repositories.Store
	rates  RateService
	opts   ImportOptions
	logger *zap.Logger
}

// NewImportService creates a new import service
func NewImportService(store repositories.Store, rates RateService, opts ImportOptions, logger *zap.Logger) ImportService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &importService{store: store, rates: rates, opts: opts, logger: logger}
}

// ImportWorkbook fully replaces categories, assets, snapshots, values and
// summaries with the workbook's content. The returned error, when set,
// is also described by the result message.
func (s *importService) ImportWorkbook(ctx context.Context, r io.Reader) (*models.ImportResult, error) {
	began := time.Now()
	start := s.opts.Now()

	wb, err := spreadsheet.Parse(r)
	if err != nil {
		s.logger.Warn("workbook rejected", zap.Error(err))
		return failed(err), err
	}

	layout := spreadsheet.ParseHeader(wb.HeaderRow)
	if len(layout.Columns) == 0 {
		s.logger.Info("workbook has no snapshot columns, nothing imported")
		return &models.ImportResult{Success: true, Message: importNoSnapshots, Stats: &models.ImportStats{}}, nil
	}

	rates := models.DefaultImportRates()
	if wb.RatesRows != nil {
		rates = spreadsheet.ParseRates(wb.RatesRows, rates)
	}

	plan, err := BuildPlan(layout, spreadsheet.ClassifyRows(wb.DataRows), rates, start)
	if err != nil {
		err = &apperrors.ParseError{Err: err}
		s.logger.Warn("workbook rejected", zap.Error(err))
		return failed(err), err
	}

	if s.opts.Transactional {
		err = s.store.Transaction(ctx, func(tx repositories.Store) error {
			return ReplaceImport(ctx, tx, plan, start)
		})
	} else {
		err = ReplaceImport(ctx, s.store, plan, start)
	}
	// written rates and values change what the cache should serve
	s.rates.InvalidateCache()
	if err != nil {
		s.logger.Error("import failed",
			zap.Error(err),
			zap.Bool("transactional", s.opts.Transactional))
		return failed(err), err
	}

	stats := plan.Stats()
	s.logger.Info("workbook imported",
		zap.Strings("labels", layout.Labels()),
		zap.Int("categories", stats.Categories),
		zap.Int("assets", stats.Assets),
		zap.Int("values", stats.Values),
		zap.Duration("took", time.Since(began)))

	return &models.ImportResult{
		Success: true,
		Message: fmt.Sprintf("导入成功: %d 个类别, %d 个标的, %d 个快照, %d 条数据",
			stats.Categories, stats.Assets, stats.Snapshots, stats.Values),
		Stats: stats,
	}, nil
}

func failed(err error) *models.ImportResult {
	return &models.ImportResult{Success: false, Message: importFailedPrefix + err.Error()}
}

// ReplaceImport clears the portfolio tables and writes plan row by row, then
// records the default USD and HKD rates dated now. Each write is its own
// upsert unless store is bound to a transaction.
func ReplaceImport(ctx context.Context, store repositories.Store, plan *ImportPlan, now time.Time) error {
	repo := store.Portfolio()

	if err := repo.ClearAll(ctx); err != nil {
		return &apperrors.ImportError{Stage: "clear", Err: err}
	}

	categoryIDs := make(map[string]uint, len(plan.Categories))
	for _, c := range plan.Categories {
		category := models.Category{Name: c.Name, SortOrder: c.SortOrder}
		if err := repo.FindOrCreateCategory(ctx, &category); err != nil {
			return &apperrors.ImportError{Stage: "categories", Err: err}
		}
		categoryIDs[c.Name] = category.ID
	}

	snapshotIDs := make(map[string]uint, len(plan.Snapshots))
	for _, s := range plan.Snapshots {
		snapshot := models.Snapshot{Label: s.Label, SnapshotDate: s.Date}
		if err := repo.FindOrCreateSnapshot(ctx, &snapshot); err != nil {
			return &apperrors.ImportError{Stage: "snapshots", Err: err}
		}
		snapshotIDs[s.Label] = snapshot.ID
	}

	for _, a := range plan.Assets {
		categoryID, ok := categoryIDs[a.Category]
		if !ok {
			return &apperrors.ImportError{Stage: "assets", Err: errors.New("unknown category " + a.Category)}
		}
		asset := models.Asset{CategoryID: categoryID, Name: a.Name, Currency: a.Currency, SortOrder: a.SortOrder}
		if err := repo.FindOrCreateAsset(ctx, &asset); err != nil {
			return &apperrors.ImportError{Stage: "assets", Err: err}
		}
		for _, v := range a.Values {
			value := models.AssetValue{
				AssetID:            asset.ID,
				SnapshotID:         snapshotIDs[v.Label],
				OriginalValue:      v.OriginalValue,
				CNYValue:           v.CNYValue,
				ChangeFromPrevious: v.ChangeFromPrevious,
				CurrentRatio:       v.CurrentRatio,
			}
			if err := repo.UpsertAssetValue(ctx, &value); err != nil {
				return &apperrors.ImportError{Stage: "values", Err: err}
			}
		}
	}

	for _, s := range plan.Summaries {
		summary := models.PortfolioSummary{
			SnapshotID:            snapshotIDs[s.Label],
			TotalValue:            s.TotalValue,
			ChangeFromPrevious:    s.ChangeFromPrevious,
			ChangeFromTwoPrevious: s.ChangeFromTwoPrevious,
		}
		if err := repo.UpsertSummary(ctx, &summary); err != nil {
			return &apperrors.ImportError{Stage: "summaries", Err: err}
		}
	}

	defaults := models.DefaultImportRates()
	for _, code := range []string{models.CurrencyUSD, models.CurrencyHKD} {
		fx := &models.ExchangeRate{
			FromCurrency:  code,
			Rate:          defaults[code],
			EffectiveDate: now,
			Source:        models.RateSourceImport,
		}
		if err := store.ExchangeRates().Upsert(ctx, fx); err != nil {
			return &apperrors.ImportError{Stage: "exchange rates", Err: err}
		}
	}

	return nil
}
