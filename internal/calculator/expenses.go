package calculator

import (
	"sort"

	"github.com/mmynk/tripwrap/internal/models"
)

// DayExpenses aggregates one day's transactions.
type DayExpenses struct {
	// Total is the day's spend in base currency.
	Total float64 `json:"total"`

	// ByCategory maps category ID to base-currency spend.
	ByCategory map[string]float64 `json:"byCategory"`

	// ByCategoryByCurrency maps category ID to currency to the original,
	// unconverted amounts, for multi-currency display.
	ByCategoryByCurrency map[string]map[string]float64 `json:"byCategoryByCurrency"`
}

// ExpensesByDay groups transactions by the first ten characters of their raw
// timestamp. The timestamp is not parsed or shifted into local time, unlike
// the media day key. Transactions without a timestamp are skipped.
func (l Ledger) ExpensesByDay(transactions []models.Transaction) map[string]*DayExpenses {
	byDay := make(map[string]*DayExpenses)

	for _, tx := range transactions {
		date := dayKey(tx.Timestamp)
		if date == "" {
			continue
		}
		amount := l.toBase(tx.Amount, tx.Currency, date)
		cat := categoryOf(tx.CategoryID)
		curr := currencyOf(tx.Currency)

		day, ok := byDay[date]
		if !ok {
			day = &DayExpenses{
				ByCategory:           make(map[string]float64),
				ByCategoryByCurrency: make(map[string]map[string]float64),
			}
			byDay[date] = day
		}
		day.Total += amount
		day.ByCategory[cat] += amount
		if day.ByCategoryByCurrency[cat] == nil {
			day.ByCategoryByCurrency[cat] = make(map[string]float64)
		}
		day.ByCategoryByCurrency[cat][curr] += tx.Amount
	}

	return byDay
}

// ExpensesByDay groups transactions by day in baseCurrency without conversion.
func ExpensesByDay(transactions []models.Transaction, baseCurrency string) map[string]*DayExpenses {
	return NewLedger(baseCurrency).ExpensesByDay(transactions)
}

// SortedDays returns the day keys of byDay in ascending order.
func SortedDays(byDay map[string]*DayExpenses) []string {
	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TotalExpense sums all transactions in base currency.
func (l Ledger) TotalExpense(transactions []models.Transaction) float64 {
	var total float64
	for _, tx := range transactions {
		total += l.toBase(tx.Amount, tx.Currency, dayKey(tx.Timestamp))
	}
	return total
}

// TotalExpenseInBase sums all transactions in baseCurrency without conversion.
func TotalExpenseInBase(transactions []models.Transaction, baseCurrency string) float64 {
	return NewLedger(baseCurrency).TotalExpense(transactions)
}

// ExpenseByCategory sums transactions per category in base currency.
func (l Ledger) ExpenseByCategory(transactions []models.Transaction) map[string]float64 {
	byCategory := make(map[string]float64)
	for _, tx := range transactions {
		byCategory[categoryOf(tx.CategoryID)] += l.toBase(tx.Amount, tx.Currency, dayKey(tx.Timestamp))
	}
	return byCategory
}

// ExpenseByCategoryInBase sums per category in baseCurrency without conversion.
func ExpenseByCategoryInBase(transactions []models.Transaction, baseCurrency string) map[string]float64 {
	return NewLedger(baseCurrency).ExpenseByCategory(transactions)
}
