package journal

import (
	"sort"
	"strings"

	"github.com/mmynk/tripwrap/internal/geo"
	"github.com/mmynk/tripwrap/internal/models"
)

// DefaultPOIRadiusMeters is the clustering radius used for daily POIs.
const DefaultPOIRadiusMeters = 100.0

// POICluster is a point of interest: nearby media from one day.
type POICluster struct {
	Center       geo.Point      `json:"center"`
	Media        []models.Media `json:"media"`
	LocationName string         `json:"locationName,omitempty"`
	PlaceType    string         `json:"placeType,omitempty"`
}

// CachedName returns the first non-blank location name already stored on a
// member, trimmed.
func (p POICluster) CachedName() string {
	for _, m := range p.Media {
		if name := strings.TrimSpace(m.LocationName); name != "" {
			return name
		}
	}
	return ""
}

// POIsForDay clusters a day's geotagged media into POIs, largest first.
// Media without coordinates are ignored. A radius <= 0 uses
// DefaultPOIRadiusMeters.
func POIsForDay(dayMedia []models.Media, radiusMeters float64) []POICluster {
	if radiusMeters <= 0 {
		radiusMeters = DefaultPOIRadiusMeters
	}

	located := make([]models.Media, 0, len(dayMedia))
	for _, m := range dayMedia {
		if _, ok := m.Location(); ok {
			located = append(located, m)
		}
	}
	if len(located) == 0 {
		return []POICluster{}
	}

	clusters := geo.Cluster(located, radiusMeters, func(m models.Media) geo.Point {
		p, _ := m.Location()
		return p
	})

	pois := make([]POICluster, 0, len(clusters))
	for _, members := range clusters {
		points := make([]geo.Point, 0, len(members))
		for _, m := range members {
			p, _ := m.Location()
			points = append(points, p)
		}
		poi := POICluster{Center: geo.Centroid(points), Media: members}
		poi.LocationName = poi.CachedName()
		pois = append(pois, poi)
	}

	sort.SliceStable(pois, func(i, j int) bool {
		return len(pois[i].Media) > len(pois[j].Media)
	})
	return pois
}
