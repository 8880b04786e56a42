package handlers

import (
	"net/http"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/services"
)

type AnalyticsHandler struct {
	service services.AnalyticsService
}

func NewAnalyticsHandler(service services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// HandleDashboard returns the latest totals, allocation and trend.
// @Summary Dashboard overview
// @Tags analytics
// @Produce json
// @Param currency query string false "Display currency (default CNY)"
// @Success 200 {object} models.DashboardOverview
// @Failure 400 {string} string "Unsupported currency"
// @Failure 500 {string} string "Internal server error"
// @Router /dashboard [get]
func (h *AnalyticsHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.GetDashboardOverview(r.Context(), r.URL.Query().Get("currency"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// HandleHistory returns the total and per-category series.
// @Summary Portfolio history
// @Tags analytics
// @Produce json
// @Param currency query string false "Display currency (default CNY)"
// @Success 200 {object} models.HistoryReport
// @Failure 400 {string} string "Unsupported currency"
// @Router /history [get]
func (h *AnalyticsHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.GetHistory(r.Context(), r.URL.Query().Get("currency"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// HandlePriceChange compares assets between two snapshots.
// @Summary Price change analysis
// @Tags analytics
// @Produce json
// @Param start query int true "Start snapshot ID"
// @Param end query int true "End snapshot ID"
// @Param currency query string false "Display currency (default CNY)"
// @Param category query string false "Category name"
// @Param top query int false "Number of top gainers and losers (default 5)"
// @Success 200 {object} models.PriceChangeAnalysis
// @Failure 400 {string} string "Invalid request"
// @Failure 404 {string} string "Snapshot not found"
// @Router /price-change [get]
func (h *AnalyticsHandler) HandlePriceChange(w http.ResponseWriter, r *http.Request) {
	start, err := queryUint(r, "start")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := queryUint(r, "end")
	if err != nil {
		writeError(w, err)
		return
	}
	if start == nil || end == nil {
		http.Error(w, "start and end snapshot IDs are required", http.StatusBadRequest)
		return
	}
	top, err := queryInt(r, "top")
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	analysis, err := h.service.GetPriceChangeAnalysis(r.Context(), services.PriceChangeRequest{
		StartSnapshotID: *start,
		EndSnapshotID:   *end,
		Currency:        q.Get("currency"),
		Category:        q.Get("category"),
		TopN:            top,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// HandleForecast projects future totals.
// @Summary Linear forecast
// @Tags analytics
// @Produce json
// @Param periods query int false "Periods to project (default 3)"
// @Success 200 {object} models.Forecast
// @Router /forecast [get]
func (h *AnalyticsHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	periods, err := queryInt(r, "periods")
	if err != nil {
		writeError(w, err)
		return
	}
	forecast, err := h.service.GetForecast(r.Context(), periods)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

// HandleReconciliation compares stored totals with derived ones.
// @Summary Summary reconciliation
// @Tags analytics
// @Produce json
// @Success 200 {array} models.ReconciliationRow
// @Router /reconciliation [get]
func (h *AnalyticsHandler) HandleReconciliation(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.GetReconciliation(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
