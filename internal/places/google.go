package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmynk/tripwrap/internal/geo"
)

const (
	// DefaultGoogleBaseURL is the Places API (New) endpoint root.
	DefaultGoogleBaseURL = "https://places.googleapis.com/v1"

	nearbySearchPath = "/places:searchNearby"
	nearbyFieldMask  = "places.displayName,places.id,places.types"
	nearbyRadius     = 100.0
	nearbyMaxResults = 10
	noTier           = 999
)

var errMissingAPIKey = errors.New("places API key is required")

// Lower tier wins when several places are nearby. Specific venues beat the
// mall they sit in; localities are a last resort.
var typeTier = map[string]int{
	"tourist_attraction":      1,
	"museum":                  1,
	"art_gallery":             1,
	"aquarium":                1,
	"zoo":                     1,
	"amusement_park":          1,
	"stadium":                 1,
	"movie_theater":           1,
	"theme_park":              1,
	"water_park":              1,
	"historical_landmark":     1,
	"cultural_landmark":       1,
	"castle":                  1,
	"monument":                1,
	"performing_arts_theater": 1,
	"concert_hall":            1,

	"restaurant":    2,
	"cafe":          2,
	"bar":           2,
	"night_club":    2,
	"bakery":        2,
	"market":        2,
	"meal_takeaway": 2,
	"meal_delivery": 2,
	"food":          2,

	"shopping_mall":    3,
	"department_store": 3,
	"supermarket":      3,
	"store":            3,
	"clothing_store":   3,
	"furniture_store":  3,
	"home_goods_store": 3,

	"park":             4,
	"natural_feature":  4,
	"national_park":    4,
	"garden":           4,
	"botanical_garden": 4,
	"hiking_area":      4,
	"scenic_spot":      4,
	"beach":            4,
	"lake":             4,
	"river":            4,
	"mountain_peak":    4,

	"lodging":         5,
	"airport":         5,
	"transit_station": 5,
	"gas_station":     5,
	"parking":         5,
	"resort_hotel":    5,
	"hostel":          5,
	"campground":      5,
	"subway_station":  5,
	"train_station":   5,
	"bus_station":     5,

	"establishment":     6,
	"point_of_interest": 6,

	"neighborhood": 7,
	"locality":     7,
}

var typeLabels = map[string]string{
	"restaurant":              "Restaurant",
	"cafe":                    "Cafe",
	"bar":                     "Bar",
	"meal_takeaway":           "Takeaway",
	"meal_delivery":           "Delivery",
	"food":                    "Food & drink",
	"lodging":                 "Hotel",
	"tourist_attraction":      "Tourist attraction",
	"museum":                  "Museum",
	"art_gallery":             "Art gallery",
	"park":                    "Park",
	"natural_feature":         "Natural feature",
	"shopping_mall":           "Shopping mall",
	"department_store":        "Department store",
	"supermarket":             "Supermarket",
	"store":                   "Store",
	"clothing_store":          "Clothing store",
	"furniture_store":         "Furniture store",
	"home_goods_store":        "Home goods",
	"gym":                     "Gym",
	"spa":                     "Spa",
	"stadium":                 "Stadium",
	"amusement_park":          "Amusement park",
	"zoo":                     "Zoo",
	"aquarium":                "Aquarium",
	"movie_theater":           "Cinema",
	"night_club":              "Night club",
	"airport":                 "Airport",
	"transit_station":         "Transit station",
	"gas_station":             "Gas station",
	"parking":                 "Parking",
	"place_of_worship":        "Place of worship",
	"school":                  "School",
	"university":              "University",
	"hospital":                "Hospital",
	"pharmacy":                "Pharmacy",
	"establishment":           "Establishment",
	"point_of_interest":       "Point of interest",
	"neighborhood":            "Neighborhood",
	"locality":                "Locality",
	"theme_park":              "Theme park",
	"water_park":              "Water park",
	"historical_landmark":     "Historic site",
	"cultural_landmark":       "Cultural site",
	"castle":                  "Castle",
	"monument":                "Monument",
	"performing_arts_theater": "Theater",
	"concert_hall":            "Concert hall",
	"bakery":                  "Bakery",
	"market":                  "Market",
	"national_park":           "National park",
	"garden":                  "Garden",
	"botanical_garden":        "Botanical garden",
	"hiking_area":             "Hiking area",
	"scenic_spot":             "Scenic spot",
	"beach":                   "Beach",
	"lake":                    "Lake",
	"river":                   "River",
	"mountain_peak":           "Mountain",
	"resort_hotel":            "Resort",
	"hostel":                  "Hostel",
	"campground":              "Campground",
	"subway_station":          "Subway",
	"train_station":           "Train station",
	"bus_station":             "Bus station",
}

// GoogleClient looks up nearby places with the Google Places API (New).
type GoogleClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGoogleClient creates a Places client. An empty baseURL uses
// DefaultGoogleBaseURL and a non-positive timeout defaults to 5s.
func NewGoogleClient(baseURL, apiKey string, timeout time.Duration) *GoogleClient {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultGoogleBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &GoogleClient{
		baseURL: trimmed,
		apiKey:  strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type nearbyRequest struct {
	LocationRestriction struct {
		Circle struct {
			Center latLng  `json:"center"`
			Radius float64 `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
	MaxResultCount int `json:"maxResultCount"`
}

type googlePlace struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	Types []string `json:"types"`
}

type nearbyResponse struct {
	Places []googlePlace `json:"places"`
}

type googleError struct {
	Error struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Nearby returns the best place within 100 m of center.
func (c *GoogleClient) Nearby(ctx context.Context, center geo.Point) (Place, error) {
	if c.apiKey == "" {
		return Place{}, errMissingAPIKey
	}

	var body nearbyRequest
	body.LocationRestriction.Circle.Center = latLng{Latitude: center.Lat, Longitude: center.Lng}
	body.LocationRestriction.Circle.Radius = nearbyRadius
	body.MaxResultCount = nearbyMaxResults

	payload, err := json.Marshal(body)
	if err != nil {
		return Place{}, fmt.Errorf("failed to encode nearby request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+nearbySearchPath, bytes.NewReader(payload))
	if err != nil {
		return Place{}, fmt.Errorf("failed to create nearby request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", nearbyFieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("failed to request nearby places: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		message := strings.TrimSpace(string(raw))
		var apiErr googleError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			message = apiErr.Error.Message
		}
		return Place{}, fmt.Errorf("places API returned status %d: %s", resp.StatusCode, message)
	}

	var data nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Place{}, fmt.Errorf("failed to decode nearby response: %w", err)
	}

	best, ok := pickBestPlace(data.Places)
	if !ok {
		return Place{}, nil
	}
	name := strings.TrimSpace(best.DisplayName.Text)
	if name == "" {
		return Place{}, nil
	}
	return Place{
		Name:      name,
		PlaceID:   strings.TrimSpace(best.ID),
		PlaceType: placeTypeLabel(best.Types),
	}, nil
}

func bestTier(types []string) int {
	best := noTier
	for _, t := range types {
		if tier, ok := typeTier[t]; ok && tier < best {
			best = tier
		}
	}
	return best
}

// pickBestPlace returns the place with the lowest tier, the earliest on ties.
func pickBestPlace(places []googlePlace) (googlePlace, bool) {
	if len(places) == 0 {
		return googlePlace{}, false
	}
	best, tier := places[0], bestTier(places[0].Types)
	for _, p := range places[1:] {
		if t := bestTier(p.Types); t < tier {
			best, tier = p, t
		}
	}
	return best, true
}

// placeTypeLabel returns the label of the first known type, else the first
// type title-cased ("ice_rink" becomes "Ice Rink").
func placeTypeLabel(types []string) string {
	for _, t := range types {
		if label, ok := typeLabels[t]; ok {
			return label
		}
	}
	if len(types) == 0 || types[0] == "" {
		return ""
	}
	words := strings.Split(types[0], "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
