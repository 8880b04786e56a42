package models

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency codes handled by the tracker. CNY is the storage currency.
const (
	CurrencyCNY = "CNY"
	CurrencyUSD = "USD"
	CurrencyHKD = "HKD"
	CurrencyJPY = "JPY"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"

	BaseCurrency = CurrencyCNY
)

// SupportedCurrencies lists the accepted currency codes in display order.
var SupportedCurrencies = []string{CurrencyCNY, CurrencyUSD, CurrencyHKD, CurrencyJPY, CurrencyEUR, CurrencyGBP}

// CurrencyNames are the labels written to the rate reference sheet.
var CurrencyNames = map[string]string{
	CurrencyCNY: "人民币",
	CurrencyUSD: "美元",
	CurrencyHKD: "港币",
	CurrencyJPY: "日元",
	CurrencyEUR: "欧元",
	CurrencyGBP: "英镑",
}

// IsSupportedCurrency reports whether code (any case) is accepted.
func IsSupportedCurrency(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}

// RateTable maps a currency code to its value in CNY.
type RateTable map[string]decimal.Decimal

// DefaultImportRates are used when the workbook carries no rate sheet.
func DefaultImportRates() RateTable {
	return RateTable{
		CurrencyCNY: decimal.NewFromInt(1),
		CurrencyUSD: decimal.NewFromFloat(7.1),
		CurrencyHKD: decimal.NewFromFloat(0.91),
		CurrencyJPY: decimal.NewFromFloat(0.047),
	}
}

// Clone returns an independent copy of the table.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Rate returns the CNY rate for code. CNY is always 1. Unknown or
// non-positive rates report ok=false.
func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	code = strings.ToUpper(code)
	if code == CurrencyCNY {
		return decimal.NewFromInt(1), true
	}
	r, ok := t[code]
	if !ok || !r.IsPositive() {
		return decimal.Zero, false
	}
	return r, true
}

// ToCNY converts an amount in code to CNY. A missing rate leaves the amount unchanged.
func (t RateTable) ToCNY(amount decimal.Decimal, code string) decimal.Decimal {
	r, ok := t.Rate(code)
	if !ok {
		return amount
	}
	return amount.Mul(r)
}

// FromCNY converts a CNY amount to code. A missing rate leaves the amount unchanged.
func (t RateTable) FromCNY(amount decimal.Decimal, code string) decimal.Decimal {
	r, ok := t.Rate(code)
	if !ok {
		return amount
	}
	return amount.Div(r)
}

// FormatMoney renders amount with the currency's symbol and minor units,
// e.g. "$1,000.00" or "¥7,100.00".
func FormatMoney(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}
