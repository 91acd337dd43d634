// Package places names points of interest: from names cached on media, from
// a user's saved locations, or from a nearby-place lookup service.
package places

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/tripwrap/internal/geo"
	"github.com/mmynk/tripwrap/internal/models"
)

// FallbackName is used when nothing better is known about a place.
const FallbackName = "a location"

// SavedLocationRadiusMeters is how close a saved location must be to count.
const SavedLocationRadiusMeters = 100.0

// Place is a resolved place. PlaceID and PlaceType are empty unless the name
// came from a lookup.
type Place struct {
	Name      string `json:"name"`
	PlaceID   string `json:"placeId,omitempty"`
	PlaceType string `json:"placeType,omitempty"`
}

// Lookup finds the most relevant place near a point. A zero Place with a nil
// error means nothing was found.
type Lookup interface {
	Nearby(ctx context.Context, center geo.Point) (Place, error)
}

// Resolver names POIs.
type Resolver struct {
	lookup Lookup
}

// NewResolver creates a Resolver. lookup may be nil, in which case names
// come only from cached and saved locations.
func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve names a POI centered at center. In order of precedence it uses the
// first name cached on a member, the first saved location within
// SavedLocationRadiusMeters, the lookup, and finally FallbackName.
// Lookup failures are logged and fall through to FallbackName.
func (r *Resolver) Resolve(ctx context.Context, center geo.Point, members []models.Media, saved []models.SavedLocation) Place {
	for _, m := range members {
		if name := strings.TrimSpace(m.LocationName); name != "" {
			return Place{Name: name}
		}
	}

	if name, ok := SavedLocationName(center, saved); ok {
		return Place{Name: name}
	}

	if r == nil || r.lookup == nil {
		return Place{Name: FallbackName}
	}

	place, err := r.lookup.Nearby(ctx, center)
	if err != nil {
		slog.Warn("nearby place lookup failed", "lat", center.Lat, "lng", center.Lng, "error", err)
		return Place{Name: FallbackName}
	}
	place.Name = strings.TrimSpace(place.Name)
	if place.Name == "" {
		return Place{Name: FallbackName}
	}
	return place
}

// SavedLocationName returns the trimmed name of the first saved location
// within SavedLocationRadiusMeters of center.
func SavedLocationName(center geo.Point, saved []models.SavedLocation) (string, bool) {
	for _, s := range saved {
		if geo.HaversineMeters(center, geo.Point{Lat: s.Lat, Lng: s.Lng}) > SavedLocationRadiusMeters {
			continue
		}
		if name := strings.TrimSpace(s.Name); name != "" {
			return name, true
		}
	}
	return "", false
}
