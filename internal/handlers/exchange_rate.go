package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/services"
)

type ExchangeRateHandler struct {
	rates services.RateService
}

func NewExchangeRateHandler(rates services.RateService) *ExchangeRateHandler {
	return &ExchangeRateHandler{rates: rates}
}

type exchangeRateRequest struct {
	FromCurrency  string          `json:"from_currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate string          `json:"effective_date"`
}

// HandleExchangeRates lists the newest rate per currency or records one.
// @Summary List or upsert exchange rates
// @Description A rate is the CNY value of one unit of from_currency; effective_date defaults to today
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param rate body exchangeRateRequest false "Rate to record (POST)"
// @Success 200 {array} models.ExchangeRate
// @Success 201 {object} models.ExchangeRate
// @Failure 400 {string} string "Invalid request"
// @Failure 500 {string} string "Internal server error"
// @Router /exchange-rates [get]
// @Router /exchange-rates [post]
func (h *ExchangeRateHandler) HandleExchangeRates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		latest, err := h.rates.ListLatest(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, latest)
	case http.MethodPost:
		h.upsert(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ExchangeRateHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req exchangeRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &apperrors.ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return
	}

	effective := time.Now().UTC()
	if req.EffectiveDate != "" {
		d, err := time.Parse(dateLayout, req.EffectiveDate)
		if err != nil {
			writeError(w, &apperrors.ErrValidation{Field: "effective_date", Message: "must be YYYY-MM-DD"})
			return
		}
		effective = d
	}

	fx, err := h.rates.UpsertExchangeRate(r.Context(), req.FromCurrency, req.Rate, effective)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fx)
}

// HandleRefresh pulls current rates from the configured provider.
// @Summary Refresh exchange rates
// @Tags exchange-rates
// @Produce json
// @Success 200 {array} models.ExchangeRate
// @Failure 500 {string} string "Provider error"
// @Router /exchange-rates/refresh [post]
func (h *ExchangeRateHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	stored, err := h.rates.Refresh(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// HandleHistory lists stored rates for one currency.
// @Summary Exchange rate history
// @Tags exchange-rates
// @Produce json
// @Param currency query string true "Currency code"
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} models.ExchangeRate
// @Failure 400 {string} string "Invalid request"
// @Router /exchange-rates/history [get]
func (h *ExchangeRateHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "start")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := queryDate(r, "end")
	if err != nil {
		writeError(w, err)
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("currency")))
	history, err := h.rates.History(r.Context(), currency, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
