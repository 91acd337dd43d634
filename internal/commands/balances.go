package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mmynk/tripwrap/internal/calculator"
	"github.com/mmynk/tripwrap/internal/models"
)

type balancesReport struct {
	BaseCurrency      string                   `json:"baseCurrency"`
	Balances          []calculator.NetBalance  `json:"balances"`
	TotalExpense      float64                  `json:"totalExpense"`
	ExpenseByCategory map[string]float64       `json:"expenseByCategory"`
	Budget            calculator.BudgetSummary `json:"budget"`
}

func buildBalances(export *Export) balancesReport {
	ledger := calculator.NewLedger(export.Trip.Currency())
	total := ledger.TotalExpense(export.Transactions)
	return balancesReport{
		BaseCurrency:      ledger.BaseCurrency,
		Balances:          ledger.GroupBalances(export.Transactions, export.Payments).Balances,
		TotalExpense:      total,
		ExpenseByCategory: ledger.ExpenseByCategory(export.Transactions),
		Budget:            calculator.Budget(total, export.Trip.BudgetPerPax, len(export.members())),
	}
}

func newBalancesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show what each member is owed or owes, after recorded payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			export, err := opts.load()
			if err != nil {
				return err
			}
			report := buildBalances(export)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printBalances(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func printBalances(w io.Writer, r balancesReport) {
	fmt.Fprintf(w, "Balances (%s)\n", r.BaseCurrency)
	if len(r.Balances) == 0 {
		fmt.Fprintln(w, "  everyone is even")
	}
	for _, b := range r.Balances {
		fmt.Fprintf(w, "  %-16s %12s\n", b.UserID, signedMoney(b.Balance))
	}

	fmt.Fprintf(w, "Total expense: %s %s\n", money(r.TotalExpense), r.BaseCurrency)

	categories := make([]string, 0, len(r.ExpenseByCategory))
	for id := range r.ExpenseByCategory {
		categories = append(categories, id)
	}
	sort.Strings(categories)
	for _, id := range categories {
		fmt.Fprintf(w, "  %-16s %12s\n", models.CategoryLabel(id), money(r.ExpenseByCategory[id]))
	}

	fmt.Fprintf(w, "Per person: %s %s across %d\n", money(r.Budget.ExpensePerPax), r.BaseCurrency, r.Budget.ParticipantCount)
	if r.Budget.HasBudget {
		fmt.Fprintf(w, "Budget: %s of %s %s (%s%%)\n",
			money(r.Budget.TotalExpense), money(r.Budget.TotalBudget), r.BaseCurrency,
			oneDecimal(r.Budget.UtilisedPct))
	}
}
