package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/db/dbtest"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/repositories"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/spreadsheet/xlsxtest"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	store     repositories.Store
	clock     *fakeClock
	rates     RateService
	importer  ImportService
	exporter  ExportService
	analytics AnalyticsService
}

func newTestEnv(t *testing.T, opts ImportOptions) *testEnv {
	t.Helper()

	logger := zaptest.NewLogger(t)
	store := repositories.NewStore(dbtest.NewSQLite(t))
	clock := &fakeClock{t: time.Date(2025, time.November, 20, 10, 0, 0, 0, time.UTC)}
	rates := NewRateService(store.ExchangeRates(), NewStaticRateProvider(), NewRateCache(time.Hour, clock.Now), logger)
	opts.Now = clock.Now

	return &testEnv{
		store:     store,
		clock:     clock,
		rates:     rates,
		importer:  NewImportService(store, rates, opts, logger),
		exporter:  NewExportService(store, rates, clock.Now, logger),
		analytics: NewAnalyticsService(store.Portfolio(), rates),
	}
}

func (e *testEnv) importSheets(t *testing.T, sheets ...xlsxtest.Sheet) *models.ImportResult {
	t.Helper()
	result, err := e.importer.ImportWorkbook(context.Background(), bytes.NewReader(xlsxtest.Build(t, sheets...)))
	require.NoError(t, err)
	require.True(t, result.Success, result.Message)
	return result
}

func dataSheet(rows ...[]interface{}) xlsxtest.Sheet {
	return xlsxtest.Sheet{Name: "data", Rows: rows}
}

func row(cells ...interface{}) []interface{} { return cells }
