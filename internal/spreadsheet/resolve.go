package spreadsheet

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

var currencyHints = []struct {
	currency string
	hints    []string
}{
	{models.CurrencyUSD, []string{"USD", "美股"}},
	{models.CurrencyHKD, []string{"HKD", "港股"}},
	{models.CurrencyJPY, []string{"JPY", "日股", "日元"}},
}

// ResolveCurrency picks an asset row's currency: the currency column if it
// holds a supported code, then hints in the asset name, then CNY.
func ResolveCurrency(row []string, currencyCol int, name string) string {
	if currencyCol >= 0 {
		code := strings.ToUpper(cell(row, currencyCol))
		if models.IsSupportedCurrency(code) {
			return code
		}
	}

	upper := strings.ToUpper(name)
	for _, h := range currencyHints {
		for _, hint := range h.hints {
			if strings.Contains(upper, hint) {
				return h.currency
			}
		}
	}
	return models.CurrencyCNY
}

// ParseRates overlays the rate sheet on defaults. Rows are
// [code, name, rate]; the first row is a header.
func ParseRates(rows [][]string, defaults models.RateTable) models.RateTable {
	rates := defaults.Clone()
	for i, row := range rows {
		if i == 0 {
			continue
		}
		code := strings.ToUpper(cell(row, 0))
		if code == "" {
			continue
		}
		rate, ok := parseDecimal(cell(row, 2))
		if !ok || !rate.IsPositive() {
			continue
		}
		rates[code] = rate
	}
	rates[models.CurrencyCNY] = decimal.NewFromInt(1)
	return rates
}

// ParseAmount reads a numeric cell. Blank or unreadable cells are zero.
func ParseAmount(s string) decimal.Decimal {
	d, _ := parseDecimal(s)
	return d
}

// ParseOptionalAmount is ParseAmount that reports blank cells.
func ParseOptionalAmount(s string) (decimal.Decimal, bool) {
	return parseDecimal(s)
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(",", "", "，", "", " ", "", "¥", "", "$", "").Replace(s)
	if s == "" || s == "-" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
