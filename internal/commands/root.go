// Package commands implements the tripctl CLI, which computes balances,
// settlements, journals and recaps from a trip export file.
package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/tripwrap/internal/config"
	"github.com/mmynk/tripwrap/pkg/logging"
)

type rootOptions struct {
	file     string
	timezone string
	logLevel string
	asJSON   bool
}

// location returns the zone calendar days are read in.
func (o *rootOptions) location() (*time.Location, error) {
	if o.timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}
	return loc, nil
}

func (o *rootOptions) load() (*Export, error) {
	export, err := LoadExport(o.file)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded export",
		"file", o.file,
		"transactions", len(export.Transactions),
		"media", len(export.Media),
		"payments", len(export.Payments),
	)
	return export, nil
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tripctl",
		Short: "Settle up and look back on a shared trip",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := config.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), level, "text"))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", "", "trip export file (.json, .yaml or .yml)")
	_ = rootCmd.MarkPersistentFlagRequired("file")
	flags.StringVar(&opts.timezone, "timezone", "", "IANA zone calendar days are read in (default: local)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")
	flags.BoolVar(&opts.asJSON, "json", false, "print JSON instead of text")

	rootCmd.AddCommand(
		newBalancesCommand(opts),
		newSettleCommand(opts),
		newJournalCommand(opts),
		newRecapCommand(opts),
	)

	return rootCmd
}
