package services

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/repositories"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/spreadsheet"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/valuation"
)

// Export sheet names
const (
	SheetPortfolio = "投资组合"
	SheetRates     = "汇率参考"
	SheetGuide     = "操作指南"
)

var guideLines = []string{
	"使用说明",
	"1. 第一个工作表为投资组合数据，每行一个标的，每个快照占三列：<MMDD>原始金额、<MMDD>人民币价值、期末减期初。",
	"2. 类别名称只写在该类别第一行，后续行留空即可沿用上一类别。",
	"3. 可识别的类别：股票/基金、美股、A+H股、日股、黄金、虚拟货币、现金。",
	"4. 币种列填写 CNY、USD、HKD、JPY、EUR 或 GBP；留空时根据标的名称推断，默认为 CNY。",
	"5. 人民币价值为空时按汇率参考表中的汇率由原始金额换算。",
	"6. 总计行用于核对，合计行会被忽略。",
	"7. 重新导入会覆盖全部类别、标的与快照数据。",
}

type exportService struct {
	store  repositories.Store
	rates  RateService
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService creates a new export service. A nil clock means time.Now.
func NewExportService(store repositories.Store, rates RateService, now func() time.Time, logger *zap.Logger) ExportService {
	if now == nil {
		now = time.Now
	}
	return &exportService{store: store, rates: rates, now: now, logger: logger}
}

// ExportWorkbook writes the portfolio in the import layout, followed by the
// rate reference and a usage guide.
func (s *exportService) ExportWorkbook(ctx context.Context) (*models.ExportFile, error) {
	ds, err := loadDataset(ctx, s.store.Portfolio())
	if err != nil {
		return nil, err
	}
	table, err := s.rates.CurrentRates(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := s.rates.ListLatest(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPortfolio); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writePortfolioSheet(f, ds, table); err != nil {
		return nil, err
	}
	if err := writeRatesSheet(f, table, latest); err != nil {
		return nil, err
	}
	if err := writeGuideSheet(f); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("workbook exported",
		zap.Int("assets", len(ds.Assets)),
		zap.Int("snapshots", len(ds.Snapshots)))

	return &models.ExportFile{
		Bytes:    buf.Bytes(),
		Filename: fmt.Sprintf("portfolio_export_%s.xlsx", s.now().Format("20060102")),
	}, nil
}

func writePortfolioSheet(f *excelize.File, ds valuation.Dataset, table models.RateTable) error {
	snapshots := ds.OrderedSnapshots()

	header := []interface{}{"类别", "标的", spreadsheet.CurrencyHeader}
	for _, snap := range snapshots {
		header = append(header,
			snap.Label+spreadsheet.OriginalSuffix,
			snap.Label+spreadsheet.ValueSuffix,
			spreadsheet.ChangeHeader)
	}
	rows := [][]interface{}{header}

	values := lo.SliceToMap(ds.Values, func(v models.AssetValue) (assetSnapshot, models.AssetValue) {
		return assetSnapshot{v.AssetID, v.SnapshotID}, v
	})
	assetsByCategory := lo.GroupBy(ds.Assets, func(a models.Asset) uint { return a.CategoryID })

	for _, category := range ds.OrderedCategories() {
		for i, asset := range assetsByCategory[category.ID] {
			label := ""
			if i == 0 {
				label = category.Name
			}
			row := []interface{}{label, asset.Name, asset.Currency}
			var previous *decimal.Decimal
			for _, snap := range snapshots {
				v, ok := values[assetSnapshot{asset.ID, snap.ID}]
				if !ok {
					row = append(row, "", "", "")
					previous = nil
					continue
				}
				original := v.OriginalValue
				if original.IsZero() && !v.CNYValue.IsZero() {
					original = table.FromCNY(v.CNYValue, asset.Currency)
				}
				var change interface{} = ""
				if previous != nil {
					change = v.CNYValue.Sub(*previous).InexactFloat64()
				}
				row = append(row, original.StringFixed(2), v.CNYValue.InexactFloat64(), change)
				cny := v.CNYValue
				previous = &cny
			}
			rows = append(rows, row)
		}
	}

	total := []interface{}{spreadsheet.TotalMarker, "", ""}
	for i, point := range ds.Trend() {
		var change interface{} = ""
		if i > 0 {
			change = point.Change.InexactFloat64()
		}
		total = append(total, "", point.Value.InexactFloat64(), change)
	}
	rows = append(rows, total)

	if err := setRows(f, SheetPortfolio, rows); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetPortfolio, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(SheetPortfolio, "A", "B", 16); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	return nil
}

type assetSnapshot struct {
	assetID    uint
	snapshotID uint
}

func writeRatesSheet(f *excelize.File, table models.RateTable, latest []models.ExchangeRate) error {
	if _, err := f.NewSheet(SheetRates); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetRates, err)
	}

	dates := lo.SliceToMap(latest, func(r models.ExchangeRate) (string, string) {
		return r.FromCurrency, r.EffectiveDate.Format("2006-01-02")
	})

	rows := [][]interface{}{{spreadsheet.CurrencyHeader, "名称", "汇率", "日期"}}
	for _, code := range models.SupportedCurrencies {
		r, ok := table.Rate(code)
		if !ok {
			continue
		}
		rows = append(rows, []interface{}{code, models.CurrencyNames[code], r.InexactFloat64(), dates[code]})
	}
	return setRows(f, SheetRates, rows)
}

func writeGuideSheet(f *excelize.File) error {
	if _, err := f.NewSheet(SheetGuide); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetGuide, err)
	}
	rows := lo.Map(guideLines, func(line string, _ int) []interface{} { return []interface{}{line} })
	if err := setRows(f, SheetGuide, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetGuide, "A", "A", 100); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	return nil
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// loadDataset reads every portfolio table into a valuation dataset.
func loadDataset(ctx context.Context, repo repositories.PortfolioRepository) (valuation.Dataset, error) {
	categories, err := repo.ListCategories(ctx)
	if err != nil {
		return valuation.Dataset{}, err
	}
	assets, err := repo.ListAssets(ctx)
	if err != nil {
		return valuation.Dataset{}, err
	}
	snapshots, err := repo.ListSnapshots(ctx)
	if err != nil {
		return valuation.Dataset{}, err
	}
	values, err := repo.ListAssetValues(ctx, nil)
	if err != nil {
		return valuation.Dataset{}, err
	}
	return valuation.Dataset{Categories: categories, Assets: assets, Snapshots: snapshots, Values: values}, nil
}
