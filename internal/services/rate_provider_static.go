package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

// StaticRateProvider serves fixed rates, for development and offline use
type StaticRateProvider struct {
	rates models.RateTable
}

// NewStaticRateProvider creates a provider with the import defaults plus
// EUR and GBP.
func NewStaticRateProvider() RateProvider {
	rates := models.DefaultImportRates()
	rates[models.CurrencyEUR] = decimal.NewFromFloat(7.8)
	rates[models.CurrencyGBP] = decimal.NewFromFloat(9.1)
	return &StaticRateProvider{rates: rates}
}

// FetchRates returns the fixed rate of every requested currency it knows.
func (p *StaticRateProvider) FetchRates(ctx context.Context, currencies []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(currencies))
	for _, c := range currencies {
		if r, ok := p.rates.Rate(c); ok {
			out[strings.ToUpper(c)] = r
		}
	}
	return out, nil
}

func (p *StaticRateProvider) Source() string {
	return models.RateSourceStatic
}
