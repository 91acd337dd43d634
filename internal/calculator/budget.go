package calculator

// BudgetSummary compares a trip's spend with its per-person budget.
type BudgetSummary struct {
	TotalExpense     float64 `json:"totalExpense"`
	ParticipantCount int     `json:"participantCount"`
	ExpensePerPax    float64 `json:"expensePerPax"`

	// HasBudget is false when the trip sets no positive budget per person;
	// TotalBudget and UtilisedPct are then zero.
	HasBudget   bool    `json:"hasBudget"`
	TotalBudget float64 `json:"totalBudget,omitempty"`
	UtilisedPct float64 `json:"utilisedPct,omitempty"`
}

// Budget summarises spend against budgetPerPax for participants members.
// The participant count is at least one.
func Budget(totalExpense, budgetPerPax float64, participants int) BudgetSummary {
	count := max(1, participants)
	summary := BudgetSummary{
		TotalExpense:     totalExpense,
		ParticipantCount: count,
		ExpensePerPax:    totalExpense / float64(count),
	}
	if budgetPerPax > 0 {
		summary.HasBudget = true
		summary.TotalBudget = budgetPerPax * float64(count)
		summary.UtilisedPct = totalExpense / summary.TotalBudget * 100
	}
	return summary
}
