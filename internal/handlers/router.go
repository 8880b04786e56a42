package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	// swagger docs
	_ "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/docs"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/services"
)

// Services are the dependencies of the HTTP API.
type Services struct {
	Import    services.ImportService
	Export    services.ExportService
	Portfolio services.PortfolioService
	Analytics services.AnalyticsService
	Rates     services.RateService
	CashFlows services.CashFlowService
	// Health reports database reachability; nil means always healthy.
	Health func(ctx context.Context) error
}

// NewRouter wires every endpoint under /api plus /health and /swagger/.
func NewRouter(svc Services, logger *zap.Logger) http.Handler {
	importExport := NewImportExportHandler(svc.Import, svc.Export)
	portfolio := NewPortfolioHandler(svc.Portfolio)
	analytics := NewAnalyticsHandler(svc.Analytics)
	rates := NewExchangeRateHandler(svc.Rates)
	cashFlows := NewCashFlowHandler(svc.CashFlows)

	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler(svc.Health)).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/import", importExport.HandleImport).Methods(http.MethodPost)
	api.HandleFunc("/export", importExport.HandleExport).Methods(http.MethodGet)

	api.HandleFunc("/categories", portfolio.HandleCategories).Methods(http.MethodGet)
	api.HandleFunc("/assets", portfolio.HandleAssets).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/assets/{id}", portfolio.HandleAsset).Methods(http.MethodDelete)
	api.HandleFunc("/snapshots", portfolio.HandleSnapshots).Methods(http.MethodGet)
	api.HandleFunc("/asset-values", portfolio.HandleAssetValues).Methods(http.MethodGet)

	api.HandleFunc("/dashboard", analytics.HandleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/history", analytics.HandleHistory).Methods(http.MethodGet)
	api.HandleFunc("/price-change", analytics.HandlePriceChange).Methods(http.MethodGet)
	api.HandleFunc("/forecast", analytics.HandleForecast).Methods(http.MethodGet)
	api.HandleFunc("/reconciliation", analytics.HandleReconciliation).Methods(http.MethodGet)

	api.HandleFunc("/exchange-rates", rates.HandleExchangeRates).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/exchange-rates/refresh", rates.HandleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/exchange-rates/history", rates.HandleHistory).Methods(http.MethodGet)

	api.HandleFunc("/cash-flows", cashFlows.HandleCashFlows).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/cash-flows/{id}", cashFlows.HandleCashFlow).Methods(http.MethodDelete)

	return CORS(AccessLog(logger)(r))
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "portfolio-backend",
		})
	}
}
