package journal

import (
	"sort"
	"time"

	"github.com/mmynk/tripwrap/internal/geo"
	"github.com/mmynk/tripwrap/internal/models"
)

// Consecutive captures closer than both thresholds are GPS jitter.
const (
	JitterThresholdMs     = 60 * 1000
	JitterThresholdMeters = 100.0
)

type fix struct {
	at    time.Time
	point geo.Point
}

// TripDistanceKm sums the great-circle distance along the time-ordered trail
// of media that have both a parseable timestamp and coordinates. A hop made
// within a minute and under 100 m is skipped as jitter. Fewer than two usable
// items give 0.
func TripDistanceKm(items []models.Media, loc *time.Location) float64 {
	fixes := make([]fix, 0, len(items))
	for _, m := range items {
		p, ok := m.Location()
		if !ok {
			continue
		}
		t, ok := ParseTimestamp(m.Timestamp, loc)
		if !ok {
			continue
		}
		fixes = append(fixes, fix{at: t, point: p})
	}
	if len(fixes) < 2 {
		return 0
	}

	sort.SliceStable(fixes, func(i, j int) bool {
		return fixes[i].at.UnixMilli() < fixes[j].at.UnixMilli()
	})

	var totalMeters float64
	for i := 1; i < len(fixes); i++ {
		prev, curr := fixes[i-1], fixes[i]
		dist := geo.HaversineMeters(prev.point, curr.point)
		dt := curr.at.UnixMilli() - prev.at.UnixMilli()
		if dt < 0 {
			dt = -dt
		}
		if dt < JitterThresholdMs && dist < JitterThresholdMeters {
			continue
		}
		totalMeters += dist
	}

	return totalMeters / 1000
}
