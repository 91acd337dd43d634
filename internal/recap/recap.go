// Package recap composes the end-of-trip recap: summary stats plus a
// day-by-day reel of highlight photos and videos.
package recap

import (
	"sort"
	"strings"
	"time"

	"github.com/mmynk/tripwrap/internal/calculator"
	"github.com/mmynk/tripwrap/internal/journal"
	"github.com/mmynk/tripwrap/internal/models"
)

// DefaultHighlightsPerDay caps each day's reel.
const DefaultHighlightsPerDay = 8

// Stats summarises the whole trip.
type Stats struct {
	TripStartDate string  `json:"tripStartDate,omitempty"`
	TripEndDate   string  `json:"tripEndDate,omitempty"`
	TotalPhotos   int     `json:"totalPhotos"`
	TotalVideos   int     `json:"totalVideos"`
	TotalExpense  float64 `json:"totalExpense"`
	BaseCurrency  string  `json:"baseCurrency"`
	DistanceKm    float64 `json:"distanceKm"`
}

// Item is a media entry in the reel.
type Item struct {
	ID                 string `json:"id"`
	StoragePath        string `json:"storagePath"`
	Timestamp          string `json:"timestamp,omitempty"`
	IsFavorite         bool   `json:"isFavorite,omitempty"`
	Rating             int    `json:"rating,omitempty"`
	Review             string `json:"review,omitempty"`
	LocationName       string `json:"locationName,omitempty"`
	UploadedByUsername string `json:"uploadedByUsername,omitempty"`
	IsVideo            bool   `json:"isVideo"`
}

// Day is one chapter of the reel.
type Day struct {
	DateKey    string `json:"dateKey"`
	DateLabel  string `json:"dateLabel"`
	Highlights []Item `json:"highlights"`
}

// Recap is derived on demand and never stored.
type Recap struct {
	Stats Stats `json:"stats"`
	Days  []Day `json:"days"`
}

// Options tunes Build. The zero value is usable.
type Options struct {
	// Location is the zone calendar days are read in. Nil means time.Local.
	Location *time.Location

	// HighlightsPerDay caps each day, DefaultHighlightsPerDay if <= 0.
	HighlightsPerDay int

	// Rate converts the expense total. Nil means no conversion.
	Rate calculator.RateFunc
}

type candidate struct {
	item  Item
	score int
}

func toItem(m models.Media) Item {
	return Item{
		ID:                 m.ID,
		StoragePath:        m.StoragePath,
		Timestamp:          m.Timestamp,
		IsFavorite:         m.IsFavorite,
		Rating:             m.Rating,
		Review:             m.Review,
		LocationName:       m.LocationName,
		UploadedByUsername: m.UploadedByUsername,
		IsVideo:            m.IsVideo(),
	}
}

// Build assembles the recap for trip. An empty baseCurrency falls back to
// the trip's currency and then to USD.
//
// Every media item counts toward the photo and video totals. Distance uses
// the geotagged items; days use every item whose timestamp parses, ordered
// oldest first.
func Build(trip *models.Trip, media []models.Media, transactions []models.Transaction, baseCurrency string, opts Options) Recap {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	perDay := opts.HighlightsPerDay
	if perDay <= 0 {
		perDay = DefaultHighlightsPerDay
	}
	if baseCurrency == "" {
		baseCurrency = trip.Currency()
	}

	stats := Stats{BaseCurrency: baseCurrency}
	if trip != nil {
		stats.TripStartDate = trip.StartDate
		stats.TripEndDate = trip.EndDate
	}

	byDay := make(map[string][]candidate)
	for _, m := range media {
		if m.IsVideo() {
			stats.TotalVideos++
		} else {
			stats.TotalPhotos++
		}
		key := journal.DateKey(m.Timestamp, loc)
		if key == "" {
			continue
		}
		byDay[key] = append(byDay[key], candidate{item: toItem(m), score: journal.Score(m)})
	}

	if len(transactions) > 0 {
		ledger := calculator.Ledger{BaseCurrency: baseCurrency, Rate: opts.Rate}
		stats.TotalExpense = ledger.TotalExpense(transactions)
	}
	stats.DistanceKm = journal.TripDistanceKm(media, loc)

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	days := make([]Day, 0, len(keys))
	for _, key := range keys {
		days = append(days, Day{
			DateKey:    key,
			DateLabel:  journal.FormatDateLabel(key, loc),
			Highlights: pickHighlights(byDay[key], perDay),
		})
	}

	return Recap{Stats: stats, Days: days}
}

// pickHighlights takes up to limit items, best first, alternating video and
// photo with video preferred at even positions. When one kind runs out the
// other fills the remaining slots.
func pickHighlights(dayItems []candidate, limit int) []Item {
	sorted := make([]candidate, len(dayItems))
	copy(sorted, dayItems)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].score > sorted[j].score })

	var photos, videos []Item
	for _, c := range sorted {
		if c.item.IsVideo {
			videos = append(videos, c.item)
		} else {
			photos = append(photos, c.item)
		}
	}

	result := make([]Item, 0, min(limit, len(sorted)))
	pi, vi := 0, 0
	for len(result) < limit && (pi < len(photos) || vi < len(videos)) {
		switch {
		case len(result)%2 == 0 && vi < len(videos):
			result = append(result, videos[vi])
			vi++
		case pi < len(photos):
			result = append(result, photos[pi])
			pi++
		default:
			result = append(result, videos[vi])
			vi++
		}
	}
	return result
}

// VideoTimeline flattens every day's highlights into one list ordered by
// raw timestamp string. Items without a timestamp sort first.
func VideoTimeline(r Recap) []Item {
	var all []Item
	for _, day := range r.Days {
		all = append(all, day.Highlights...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Timestamp < all[j].Timestamp })
	return all
}

// LocationNamesForDay returns the distinct trimmed location names in
// highlights, in order of first appearance.
func LocationNamesForDay(highlights []Item) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, m := range highlights {
		name := strings.TrimSpace(m.LocationName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// FilterExcluded drops highlights whose ID is in excluded, then drops days
// left empty. Stats are kept as they are.
func FilterExcluded(r Recap, excluded map[string]bool) Recap {
	days := make([]Day, 0, len(r.Days))
	for _, day := range r.Days {
		kept := make([]Item, 0, len(day.Highlights))
		for _, m := range day.Highlights {
			if !excluded[m.ID] {
				kept = append(kept, m)
			}
		}
		if len(kept) == 0 {
			continue
		}
		day.Highlights = kept
		days = append(days, day)
	}
	return Recap{Stats: r.Stats, Days: days}
}
