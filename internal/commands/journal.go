package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmynk/tripwrap/internal/journal"
	"github.com/mmynk/tripwrap/internal/places"
)

type journalReport struct {
	Days       []journal.Day `json:"days"`
	DistanceKm float64       `json:"distanceKm"`
}

func newJournalCommand(opts *rootOptions) *cobra.Command {
	var radius float64

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print the day-by-day journal with points of interest",
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

			days := journal.Build(&export.Trip, export.Media, export.Transactions, journal.Options{
				Location:     loc,
				RadiusMeters: radius,
			})

			// Offline: names come from the export and saved locations only
			resolver := places.NewResolver(nil)
			for i := range days {
				for j := range days[i].POIs {
					poi := &days[i].POIs[j]
					if poi.LocationName == "" {
						poi.LocationName = resolver.Resolve(cmd.Context(), poi.Center, poi.Media, export.SavedLocations).Name
					}
				}
			}

			report := journalReport{Days: days, DistanceKm: journal.TripDistanceKm(export.Media, loc)}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printJournal(cmd.OutOrStdout(), report, export.Trip.Currency())
			return nil
		},
	}

	cmd.Flags().Float64Var(&radius, "radius", journal.DefaultPOIRadiusMeters, "POI clustering radius in meters")

	return cmd
}

func printJournal(w io.Writer, r journalReport, currency string) {
	if len(r.Days) == 0 {
		fmt.Fprintln(w, "No geotagged media yet.")
	}
	for _, day := range r.Days {
		if day.DayIndex != nil {
			fmt.Fprintf(w, "Day %d: %s\n", *day.DayIndex, day.DateLabel)
		} else {
			fmt.Fprintln(w, day.DateLabel)
		}

		fmt.Fprintf(w, "  %d items", day.MediaCount)
		if day.AverageRating != nil {
			fmt.Fprintf(w, ", rated %s", oneDecimal(*day.AverageRating))
		}
		fmt.Fprintln(w)
		if day.Highlight != nil {
			fmt.Fprintf(w, "  highlight: %s\n", day.Highlight.StoragePath)
		}
		for _, poi := range day.POIs {
			fmt.Fprintf(w, "  - %s (%d)\n", poi.LocationName, len(poi.Media))
		}
		if day.Expenses.Total > 0 {
			fmt.Fprintf(w, "  spent %s %s\n", money(day.Expenses.Total), currency)
		}
	}
	fmt.Fprintf(w, "Distance: %s km\n", oneDecimal(r.DistanceKm))
}
