package journal

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mmynk/tripwrap/internal/models"
)

// UnknownDateKey groups media whose timestamp cannot be parsed.
const UnknownDateKey = "unknown"

const (
	dateKeyLayout = "2006-01-02"
	msPerDay      = 24 * 60 * 60 * 1000

	// LongDateLayout renders labels like "Sunday, Mar 3, 2024".
	LongDateLayout = "Monday, Jan 2, 2006"

	// ShortDateLayout renders labels like "Sun, Mar 3, 2024".
	ShortDateLayout = "Mon, Jan 2, 2006"
)

// Timestamps with an explicit zone.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// Timestamps without a zone are read in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp. Date-time values without a
// zone are read in loc (time.Local when nil); a bare date is UTC midnight.
func ParseTimestamp(ts string, loc *time.Location) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, ts, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(dateKeyLayout, ts); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DateKey returns the calendar date ("YYYY-MM-DD") of ts as seen in loc, or
// "" when ts cannot be parsed. A photo taken at 23:30 local time belongs to
// that local day even if it is already the next day in UTC.
func DateKey(ts string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t, ok := ParseTimestamp(ts, loc)
	if !ok {
		return ""
	}
	return t.In(loc).Format(dateKeyLayout)
}

// DayIndex returns the 1-based trip day of dateKey counted from tripStart.
// The day is anchored at noon UTC so zone offsets cannot shift it across a
// boundary. ok is false when either date is missing or unparseable, or when
// dateKey falls before the trip started.
func DayIndex(dateKey, tripStart string) (int, bool) {
	if tripStart == "" {
		return 0, false
	}
	start, ok := ParseTimestamp(tripStart, time.Local)
	if !ok {
		return 0, false
	}
	day, err := time.Parse(time.RFC3339, dateKey+"T12:00:00Z")
	if err != nil {
		return 0, false
	}

	diffMs := day.UnixMilli() - start.UnixMilli()
	diffDays := int(math.Floor(float64(diffMs) / msPerDay))
	if diffDays < 0 {
		return 0, false
	}
	return diffDays + 1, true
}

// GroupByDate buckets media by DateKey in loc. Media with an unparseable
// timestamp land under UnknownDateKey. Each bucket keeps input order.
func GroupByDate(items []models.Media, loc *time.Location) map[string][]models.Media {
	groups := make(map[string][]models.Media)
	for _, m := range items {
		key := DateKey(m.Timestamp, loc)
		if key == "" {
			key = UnknownDateKey
		}
		groups[key] = append(groups[key], m)
	}
	return groups
}

// DateKeys returns the known date keys of groups, ascending.
func DateKeys(groups map[string][]models.Media) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		if k != UnknownDateKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// FormatDateLabel renders dateKey with LongDateLayout.
func FormatDateLabel(dateKey string, loc *time.Location) string {
	return FormatDate(dateKey, LongDateLayout, loc)
}

// FormatDate renders dateKey with layout, anchored at noon UTC and shown in
// loc. An unparseable key is returned unchanged.
func FormatDate(dateKey, layout string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.Parse(time.RFC3339, dateKey+"T12:00:00Z")
	if err != nil {
		return dateKey
	}
	return t.In(loc).Format(layout)
}
