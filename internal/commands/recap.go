package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/tripwrap/internal/recap"
)

func newRecapCommand(opts *rootOptions) *cobra.Command {
	var currency string
	var perDay int
	var exclude []string

	cmd := &cobra.Command{
		Use:   "recap",
		Short: "Print the end-of-trip recap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			export, err := opts.load()
			if err != nil {
				return err
			}
			loc, err := opts.location()
			if err != nil {
				return err
			}

			r := recap.Build(&export.Trip, export.Media, export.Transactions, currency, recap.Options{
				Location:         loc,
				HighlightsPerDay: perDay,
			})
			if len(exclude) > 0 {
				excluded := make(map[string]bool, len(exclude))
				for _, id := range exclude {
					excluded[id] = true
				}
				r = recap.FilterExcluded(r, excluded)
			}

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), r)
			}
			printRecap(cmd.OutOrStdout(), r)
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "currency the total is shown in (default: trip currency)")
	cmd.Flags().IntVar(&perDay, "per-day", recap.DefaultHighlightsPerDay, "highlights per day")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "media IDs to leave out")

	return cmd
}

func printRecap(w io.Writer, r recap.Recap) {
	s := r.Stats
	if s.TripStartDate != "" {
		fmt.Fprintf(w, "%s to %s\n", s.TripStartDate, s.TripEndDate)
	}
	fmt.Fprintf(w, "%d photos, %d videos, %s km\n", s.TotalPhotos, s.TotalVideos, oneDecimal(s.DistanceKm))
	fmt.Fprintf(w, "Spent %s %s\n", money(s.TotalExpense), s.BaseCurrency)

	for _, day := range r.Days {
		fmt.Fprintln(w, day.DateLabel)
		if names := recap.LocationNamesForDay(day.Highlights); len(names) > 0 {
			fmt.Fprintf(w, "  at %s\n", strings.Join(names, ", "))
		}
		for _, item := range day.Highlights {
			kind := "photo"
			if item.IsVideo {
				kind = "video"
			}
			fmt.Fprintf(w, "  [%s] %s\n", kind, item.StoragePath)
		}
	}
}
