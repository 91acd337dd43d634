package recap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripwrap/internal/models"
)

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, m := range items {
		out = append(out, m.ID)
	}
	return out
}

func TestBuildStats(t *testing.T) {
	trip := &models.Trip{StartDate: "2024-03-01", EndDate: "2024-03-05"}
	media := []models.Media{
		models.Media{ID: "p1", StoragePath: "trip/p1.jpg", Timestamp: "2024-03-01T10:00:00Z"}.WithLocation(0, 0),
		models.Media{ID: "p2", StoragePath: "trip/p2.HEIC", Timestamp: "2024-03-01T12:00:00Z"}.WithLocation(0.01, 0),
		{ID: "v1", StoragePath: "trip/v1.MOV", Timestamp: "bad"},
	}
	transactions := []models.Transaction{
		{Amount: 30, Currency: "USD"},
		{Amount: 12.5, Currency: "EUR"},
	}

	r := Build(trip, media, transactions, "", Options{Location: time.UTC})

	assert.Equal(t, "2024-03-01", r.Stats.TripStartDate)
	assert.Equal(t, "2024-03-05", r.Stats.TripEndDate)
	assert.Equal(t, 2, r.Stats.TotalPhotos)
	assert.Equal(t, 1, r.Stats.TotalVideos)
	assert.InDelta(t, 42.5, r.Stats.TotalExpense, 1e-9)
	assert.Equal(t, "USD", r.Stats.BaseCurrency)
	assert.InDelta(t, 1.112, r.Stats.DistanceKm, 0.01)

	require.Len(t, r.Days, 1, "media with an unparseable timestamp has no day")
	assert.Equal(t, "2024-03-01", r.Days[0].DateKey)
	assert.Equal(t, "Friday, Mar 1, 2024", r.Days[0].DateLabel)
}

func TestBuildWithoutTransactions(t *testing.T) {
	r := Build(nil, nil, nil, "EUR", Options{})

	assert.Zero(t, r.Stats.TotalExpense)
	assert.Equal(t, "EUR", r.Stats.BaseCurrency)
	assert.Empty(t, r.Days)
	assert.Empty(t, r.Stats.TripStartDate)
}

func TestBuildDaysAscending(t *testing.T) {
	media := []models.Media{
		{ID: "c", StoragePath: "c.jpg", Timestamp: "2024-03-03T10:00:00Z"},
		{ID: "a", StoragePath: "a.jpg", Timestamp: "2024-03-01T10:00:00Z"},
		{ID: "b", StoragePath: "b.jpg", Timestamp: "2024-03-02T10:00:00Z"},
	}

	r := Build(nil, media, nil, "USD", Options{Location: time.UTC})

	require.Len(t, r.Days, 3)
	assert.Equal(t, "2024-03-01", r.Days[0].DateKey)
	assert.Equal(t, "2024-03-02", r.Days[1].DateKey)
	assert.Equal(t, "2024-03-03", r.Days[2].DateKey)
}

func TestHighlightsInterleaveVideoFirst(t *testing.T) {
	ts := "2024-03-01T10:00:00Z"
	media := []models.Media{
		{ID: "p-low", StoragePath: "1.jpg", Timestamp: ts},
		{ID: "p-fav", StoragePath: "2.jpg", Timestamp: ts, IsFavorite: true},
		{ID: "v-low", StoragePath: "3.mp4", Timestamp: ts},
		{ID: "v-rated", StoragePath: "4.webm", Timestamp: ts, Rating: 3},
		{ID: "p-rated", StoragePath: "5.png", Timestamp: ts, Rating: 4},
	}

	r := Build(nil, media, nil, "USD", Options{Location: time.UTC})

	require.Len(t, r.Days, 1)
	assert.Equal(t, []string{"v-rated", "p-fav", "v-low", "p-rated", "p-low"}, ids(r.Days[0].Highlights))
}

func TestHighlightsCapped(t *testing.T) {
	var media []models.Media
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		media = append(media, models.Media{ID: id, StoragePath: id + ".jpg", Timestamp: "2024-03-01T10:00:00Z"})
	}

	r := Build(nil, media, nil, "USD", Options{Location: time.UTC})
	require.Len(t, r.Days, 1)
	assert.Len(t, r.Days[0].Highlights, DefaultHighlightsPerDay)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, ids(r.Days[0].Highlights), "equal scores keep input order")

	r = Build(nil, media, nil, "USD", Options{Location: time.UTC, HighlightsPerDay: 3})
	assert.Len(t, r.Days[0].Highlights, 3)
}

func TestVideoTimeline(t *testing.T) {
	r := Recap{Days: []Day{
		{DateKey: "2024-03-02", Highlights: []Item{{ID: "late", Timestamp: "2024-03-02T09:00:00Z"}}},
		{DateKey: "2024-03-01", Highlights: []Item{
			{ID: "mid", Timestamp: "2024-03-01T18:00:00Z"},
			{ID: "early", Timestamp: "2024-03-01T08:00:00Z"},
		}},
	}}

	assert.Equal(t, []string{"early", "mid", "late"}, ids(VideoTimeline(r)))
}

func TestLocationNamesForDay(t *testing.T) {
	got := LocationNamesForDay([]Item{
		{LocationName: " Shibuya Crossing "},
		{LocationName: ""},
		{LocationName: "Meiji Shrine"},
		{LocationName: "Shibuya Crossing"},
	})
	assert.Equal(t, []string{"Shibuya Crossing", "Meiji Shrine"}, got)
}

func TestFilterExcluded(t *testing.T) {
	r := Recap{
		Stats: Stats{TotalPhotos: 3},
		Days: []Day{
			{DateKey: "2024-03-01", Highlights: []Item{{ID: "a"}, {ID: "b"}}},
			{DateKey: "2024-03-02", Highlights: []Item{{ID: "c"}}},
		},
	}

	got := FilterExcluded(r, map[string]bool{"b": true, "c": true})

	assert.Equal(t, 3, got.Stats.TotalPhotos)
	require.Len(t, got.Days, 1)
	assert.Equal(t, []string{"a"}, ids(got.Days[0].Highlights))
	assert.Len(t, r.Days[0].Highlights, 2, "input is not modified")
}
