package commands

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"
)

// money renders an amount with two decimals, rounding half away from zero.
func money(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// signedMoney is money with an explicit sign for non-zero amounts.
func signedMoney(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}

// oneDecimal renders a ratio, rating or distance with one decimal.
func oneDecimal(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(1)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
