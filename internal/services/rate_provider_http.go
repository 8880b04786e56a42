package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

// HTTPRateProvider fetches rates from exchangerate-api.com
type HTTPRateProvider struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPRateProvider creates a provider. Without an API key the free v4
// endpoint is used. Requests are throttled to requestsPerMinute.
func NewHTTPRateProvider(apiKey string, requestsPerMinute int) RateProvider {
	baseURL := "https://api.exchangerate-api.com/v4/latest"
	if apiKey != "" {
		baseURL = "https://v6.exchangerate-api.com/v6/" + apiKey + "/latest"
	}
	return newHTTPRateProvider(baseURL, requestsPerMinute)
}

func newHTTPRateProvider(baseURL string, requestsPerMinute int) *HTTPRateProvider {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	return &HTTPRateProvider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
	}
}

// FetchRates asks for CNY-based quotes and inverts them, so each result is
// the CNY value of one unit of the currency.
func (p *HTTPRateProvider) FetchRates(ctx context.Context, currencies []string) (map[string]decimal.Decimal, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := fmt.Sprintf("%s/%s", p.baseURL, models.BaseCurrency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	// v6 answers with conversion_rates, v4 with rates
	var body struct {
		Result          string                     `json:"result"`
		ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
		Rates           map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if body.Result != "" && body.Result != "success" {
		return nil, fmt.Errorf("API error: %s", body.Result)
	}

	quotes := body.ConversionRates
	if quotes == nil {
		quotes = body.Rates
	}
	if quotes == nil {
		return nil, fmt.Errorf("API response missing rates")
	}

	one := decimal.NewFromInt(1)
	out := make(map[string]decimal.Decimal, len(currencies))
	for _, c := range currencies {
		code := strings.ToUpper(c)
		if code == models.BaseCurrency {
			out[code] = one
			continue
		}
		perCNY, ok := quotes[code]
		if !ok || !perCNY.IsPositive() {
			continue
		}
		out[code] = one.Div(perCNY).Round(6)
	}
	return out, nil
}

func (p *HTTPRateProvider) Source() string {
	return models.RateSourceExchangeRate
}
