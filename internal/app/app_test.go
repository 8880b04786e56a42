package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/config"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/db/dbtest"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{FXProvider: "static", RateCacheTTL: time.Hour, FXRequestsPerMinute: 30}
}

func TestRateProvider(t *testing.T) {
	cfg := testConfig()
	p, err := RateProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, models.RateSourceStatic, p.Source())

	cfg.FXProvider = "http"
	_, err = RateProvider(cfg)
	assert.Error(t, err, "api key required")

	cfg.FXAPIKey = "key"
	p, err = RateProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, models.RateSourceExchangeRate, p.Source())

	cfg.FXProvider = "carrier-pigeon"
	_, err = RateProvider(cfg)
	assert.Error(t, err)
}

func TestNewWithDB_ServesHealth(t *testing.T) {
	logger := zaptest.NewLogger(t)
	a, err := NewWithDB(testConfig(), dbtest.NewSQLite(t), logger)
	require.NoError(t, err)

	rw := httptest.NewRecorder()
	a.Handler(logger).ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rw.Code)

	rw = httptest.NewRecorder()
	a.Handler(logger).ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	assert.Equal(t, http.StatusOK, rw.Code)
}
