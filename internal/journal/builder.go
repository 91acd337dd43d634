// Package journal builds the per-day trip journal from media and expenses:
// day grouping in local time, proximity POIs, highlight selection, journey
// distance and day numbering.
package journal

import (
	"sort"
	"strings"
	"time"

	"github.com/mmynk/tripwrap/internal/calculator"
	"github.com/mmynk/tripwrap/internal/models"
)

// Day is one journal entry.
type Day struct {
	DateKey   string `json:"dateKey"`
	DateLabel string `json:"dateLabel"`

	// DayIndex is the 1-based trip day, nil before the trip start or when
	// the trip has no start date.
	DayIndex *int `json:"dayIndex,omitempty"`

	Highlight  *models.Media  `json:"highlight,omitempty"`
	Alternates []models.Media `json:"alternates"`
	POIs       []POICluster   `json:"pois"`
	MediaCount int            `json:"mediaCount"`

	// AverageRating is the mean of the day's 1..5 ratings, nil if none.
	AverageRating *float64 `json:"averageRating,omitempty"`

	Contributors []string               `json:"contributors"`
	Expenses     calculator.DayExpenses `json:"expenses"`
}

// Options tunes Build. The zero value is usable.
type Options struct {
	// Location is the zone calendar days are read in. Nil means time.Local.
	Location *time.Location

	// RadiusMeters is the POI clustering radius, DefaultPOIRadiusMeters if <= 0.
	RadiusMeters float64

	// Rand breaks ties when a day has no favorite, rating or review.
	Rand Rand

	// Ledger converts day expenses. The zero value uses the trip currency
	// with no conversion.
	Ledger *calculator.Ledger
}

// Build assembles the journal for a trip, newest day first. Only geotagged
// media with a parseable timestamp appear. Expense totals are looked up by
// the same date key.
func Build(trip *models.Trip, media []models.Media, transactions []models.Transaction, opts Options) []Day {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	ledger := calculator.NewLedger(trip.Currency())
	if opts.Ledger != nil {
		ledger = *opts.Ledger
	}

	located := make([]models.Media, 0, len(media))
	for _, m := range media {
		if _, ok := m.Location(); ok {
			located = append(located, m)
		}
	}

	byDate := GroupByDate(located, loc)
	dateKeys := DateKeys(byDate)
	sort.Sort(sort.Reverse(sort.StringSlice(dateKeys)))

	expenses := ledger.ExpensesByDay(transactions)

	var tripStart string
	if trip != nil {
		tripStart = trip.StartDate
	}

	days := make([]Day, 0, len(dateKeys))
	for _, key := range dateKeys {
		dayMedia := byDate[key]
		day := Day{
			DateKey:      key,
			DateLabel:    FormatDate(key, ShortDateLayout, loc),
			POIs:         POIsForDay(dayMedia, opts.RadiusMeters),
			MediaCount:   len(dayMedia),
			Alternates:   dayMedia,
			Contributors: contributors(dayMedia),
		}

		if n, ok := DayIndex(key, tripStart); ok {
			day.DayIndex = &n
		}
		if h, ok := PickHighlight(dayMedia, opts.Rand); ok {
			day.Highlight = &h
			day.Alternates = withoutID(dayMedia, h.ID)
		}
		day.AverageRating = averageRating(dayMedia)
		if e, ok := expenses[key]; ok {
			day.Expenses = *e
		}

		days = append(days, day)
	}
	return days
}

func averageRating(items []models.Media) *float64 {
	var sum, n int
	for _, m := range items {
		if m.Rating >= 1 && m.Rating <= 5 {
			sum += m.Rating
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := float64(sum) / float64(n)
	return &avg
}

// contributors lists distinct uploader names in first-seen order.
func contributors(items []models.Media) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, m := range items {
		name := strings.TrimSpace(m.UploadedByUsername)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func withoutID(items []models.Media, id string) []models.Media {
	out := make([]models.Media, 0, len(items))
	for _, m := range items {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}
