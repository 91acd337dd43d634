package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/tripwrap/internal/calculator"
)

func newSettleCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "settle",
		Short: "List the fewest payments that settle every balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			export, err := opts.load()
			if err != nil {
				return err
			}

			ledger := calculator.NewLedger(export.Trip.Currency())
			settlements := ledger.GroupBalances(export.Transactions, export.Payments).Settlements
			if opts.asJSON {
				if settlements == nil {
					settlements = []calculator.Settlement{}
				}
				return writeJSON(cmd.OutOrStdout(), settlements)
			}

			w := cmd.OutOrStdout()
			if len(settlements) == 0 {
				fmt.Fprintln(w, "All settled up.")
				return nil
			}
			for _, s := range settlements {
				fmt.Fprintf(w, "%s pays %s %s %s\n", s.FromUserID, s.ToUserID, money(s.Amount), ledger.BaseCurrency)
			}
			return nil
		},
	}
}
