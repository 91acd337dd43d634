// Package calculator computes trip money views: per-user shares, net balances,
// per-day and per-category expense totals, and simplified settlements.
//
// Every function is pure and synchronous. Amounts are float64 and compared
// with Epsilon; callers format them for display.
package calculator

import "strings"

// Epsilon is the magnitude below which a balance counts as settled.
const Epsilon = 1e-6

// DefaultCurrency is assumed for transactions without a currency code.
const DefaultCurrency = "USD"

// RateFunc returns the factor converting one unit of currency from into to,
// as of date ("YYYY-MM-DD", possibly empty).
type RateFunc func(from, to, date string) float64

// IdentityRate converts every currency 1:1. Trip totals currently add
// amounts across currencies without conversion.
func IdentityRate(from, to, date string) float64 {
	return 1
}

// Ledger aggregates transactions into a trip's base currency.
type Ledger struct {
	// BaseCurrency is the currency totals are reported in.
	BaseCurrency string

	// Rate converts transaction amounts into BaseCurrency.
	// Nil means IdentityRate.
	Rate RateFunc
}

// NewLedger returns a Ledger for baseCurrency using IdentityRate.
func NewLedger(baseCurrency string) Ledger {
	return Ledger{BaseCurrency: baseCurrency, Rate: IdentityRate}
}

// toBase converts amount from currency into the ledger's base currency.
func (l Ledger) toBase(amount float64, currency, date string) float64 {
	if l.Rate == nil || currency == l.BaseCurrency {
		return amount
	}
	return amount * l.Rate(currency, l.BaseCurrency, date)
}

// dayKey truncates an ISO timestamp to its first ten characters without
// parsing it, so "2024-03-01T23:30:00-05:00" stays on 2024-03-01.
func dayKey(timestamp string) string {
	if len(timestamp) > 10 {
		return timestamp[:10]
	}
	return timestamp
}

func categoryOf(categoryID string) string {
	if c := strings.TrimSpace(categoryID); c != "" {
		return c
	}
	return "other"
}

func currencyOf(currency string) string {
	if c := strings.TrimSpace(currency); c != "" {
		return c
	}
	return DefaultCurrency
}
