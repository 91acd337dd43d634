package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/tripwrap/internal/models"
)

func TestExpensesByDay(t *testing.T) {
	transactions := []models.Transaction{
		{Amount: 20, Currency: "USD", CategoryID: "food", Timestamp: "2024-03-01T23:30:00-05:00"},
		{Amount: 15, Currency: "EUR", CategoryID: "food", Timestamp: "2024-03-01T08:00:00Z"},
		{Amount: 5, Currency: "", CategoryID: "  ", Timestamp: "2024-03-02T09:00:00Z"},
		{Amount: 99, Currency: "USD", CategoryID: "food", Timestamp: ""},
	}

	byDay := ExpensesByDay(transactions, "USD")

	if len(byDay) != 2 {
		t.Fatalf("got %d days, want 2: %v", len(byDay), SortedDays(byDay))
	}

	// The date prefix is taken verbatim, even when the offset would move the
	// instant into the next UTC day.
	first := byDay["2024-03-01"]
	if first == nil {
		t.Fatal("missing 2024-03-01")
	}
	if math.Abs(first.Total-35) > 0.01 {
		t.Errorf("total = %v, want 35", first.Total)
	}
	if math.Abs(first.ByCategory["food"]-35) > 0.01 {
		t.Errorf("food = %v, want 35", first.ByCategory["food"])
	}
	if first.ByCategoryByCurrency["food"]["EUR"] != 15 || first.ByCategoryByCurrency["food"]["USD"] != 20 {
		t.Errorf("by currency = %v", first.ByCategoryByCurrency["food"])
	}

	second := byDay["2024-03-02"]
	if second == nil {
		t.Fatal("missing 2024-03-02")
	}
	if second.ByCategory[models.DefaultCategoryID] != 5 {
		t.Errorf("blank category should default to %q: %v", models.DefaultCategoryID, second.ByCategory)
	}
	if second.ByCategoryByCurrency[models.DefaultCategoryID][DefaultCurrency] != 5 {
		t.Errorf("blank currency should default to %q: %v", DefaultCurrency, second.ByCategoryByCurrency)
	}
}

func TestLedgerConvertsDailyTotals(t *testing.T) {
	ledger := Ledger{
		BaseCurrency: "USD",
		Rate: func(from, to, date string) float64 {
			if from == "EUR" {
				return 2
			}
			return 1
		},
	}
	byDay := ledger.ExpensesByDay([]models.Transaction{
		{Amount: 10, Currency: "EUR", CategoryID: "transport", Timestamp: "2024-03-01T08:00:00Z"},
	})
	day := byDay["2024-03-01"]
	if day.Total != 20 || day.ByCategory["transport"] != 20 {
		t.Errorf("converted day = %+v, want total 20", day)
	}
	if day.ByCategoryByCurrency["transport"]["EUR"] != 10 {
		t.Errorf("original amount = %v, want 10", day.ByCategoryByCurrency["transport"]["EUR"])
	}
	if got := ledger.TotalExpense([]models.Transaction{{Amount: 10, Currency: "EUR"}, {Amount: 1, Currency: "USD"}}); got != 21 {
		t.Errorf("TotalExpense() = %v, want 21", got)
	}
}

func TestExpenseByCategory(t *testing.T) {
	got := ExpenseByCategoryInBase([]models.Transaction{
		{Amount: 10, CategoryID: "food"},
		{Amount: 5, CategoryID: "food"},
		{Amount: 7},
	}, "USD")
	if got["food"] != 15 || got["other"] != 7 {
		t.Errorf("ExpenseByCategoryInBase() = %v", got)
	}
	if total := TotalExpenseInBase([]models.Transaction{{Amount: 10}, {Amount: 2.5}}, "USD"); total != 12.5 {
		t.Errorf("TotalExpenseInBase() = %v, want 12.5", total)
	}
}

func TestBudget(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		perPax       float64
		participants int
		validateFunc func(t *testing.T, s BudgetSummary)
	}{
		{
			name:         "with budget",
			total:        300,
			perPax:       200,
			participants: 3,
			validateFunc: func(t *testing.T, s BudgetSummary) {
				if !s.HasBudget || s.TotalBudget != 600 {
					t.Errorf("budget = %+v, want total 600", s)
				}
				if math.Abs(s.UtilisedPct-50) > 0.01 {
					t.Errorf("utilised = %v, want 50", s.UtilisedPct)
				}
				if s.ExpensePerPax != 100 {
					t.Errorf("per pax = %v, want 100", s.ExpensePerPax)
				}
			},
		},
		{
			name:         "no budget",
			total:        90,
			perPax:       0,
			participants: 2,
			validateFunc: func(t *testing.T, s BudgetSummary) {
				if s.HasBudget || s.TotalBudget != 0 || s.UtilisedPct != 0 {
					t.Errorf("budget = %+v, want none", s)
				}
			},
		},
		{
			name:         "zero participants counts as one",
			total:        50,
			perPax:       100,
			participants: 0,
			validateFunc: func(t *testing.T, s BudgetSummary) {
				if s.ParticipantCount != 1 || s.ExpensePerPax != 50 || s.TotalBudget != 100 {
					t.Errorf("budget = %+v", s)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, Budget(tt.total, tt.perPax, tt.participants))
		})
	}
}
