package places

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripwrap/internal/geo"
	"github.com/mmynk/tripwrap/internal/models"
)

type stubLookup struct {
	place Place
	err   error
	calls int
}

func (s *stubLookup) Nearby(ctx context.Context, center geo.Point) (Place, error) {
	s.calls++
	return s.place, s.err
}

func TestResolverPrecedence(t *testing.T) {
	t.Parallel()

	center := geo.Point{Lat: 35.7148, Lng: 139.7967}
	nearbySaved := []models.SavedLocation{
		{Name: "far away", Lat: 36, Lng: 140},
		{Name: " Our hotel ", Lat: 35.7149, Lng: 139.7967},
	}
	cachedMember := []models.Media{{ID: "a"}, {ID: "b", LocationName: "  Senso-ji "}}
	lookup := &stubLookup{place: Place{Name: "Kaminarimon", PlaceID: "p1", PlaceType: "Tourist attraction"}}

	tests := []struct {
		name    string
		members []models.Media
		saved   []models.SavedLocation
		lookup  Lookup
		want    Place
	}{
		{"cached name wins", cachedMember, nearbySaved, lookup, Place{Name: "Senso-ji"}},
		{"saved location within radius", []models.Media{{ID: "a"}}, nearbySaved, lookup, Place{Name: "Our hotel"}},
		{"lookup result", nil, nearbySaved[:1], lookup, Place{Name: "Kaminarimon", PlaceID: "p1", PlaceType: "Tourist attraction"}},
		{"lookup error falls back", nil, nil, &stubLookup{err: errors.New("boom")}, Place{Name: FallbackName}},
		{"blank lookup name falls back", nil, nil, &stubLookup{place: Place{Name: "  ", PlaceID: "x"}}, Place{Name: FallbackName}},
		{"no lookup", nil, nil, nil, Place{Name: FallbackName}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.lookup)
			got := r.Resolve(context.Background(), center, tt.members, tt.saved)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGoogleClientNearby(t *testing.T) {
	t.Parallel()

	t.Run("picks the most specific place", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/places:searchNearby", r.URL.Path)
			assert.Equal(t, "secret", r.Header.Get("X-Goog-Api-Key"))
			assert.Equal(t, "places.displayName,places.id,places.types", r.Header.Get("X-Goog-FieldMask"))

			var body nearbyRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.InDelta(t, 1.3, body.LocationRestriction.Circle.Center.Latitude, 1e-9)
			assert.InDelta(t, 103.9, body.LocationRestriction.Circle.Center.Longitude, 1e-9)
			assert.Equal(t, 100.0, body.LocationRestriction.Circle.Radius)
			assert.Equal(t, 10, body.MaxResultCount)

			_, _ = w.Write([]byte(`{"places":[
				{"id":"mall","displayName":{"text":"Tampines Mall"},"types":["shopping_mall","point_of_interest"]},
				{"id":"sb","displayName":{"text":" Starbucks "},"types":["cafe","food"]},
				{"id":"hood","displayName":{"text":"Tampines"},"types":["neighborhood"]}
			]}`))
		}))
		defer server.Close()

		client := NewGoogleClient(server.URL, "secret", time.Second)
		got, err := client.Nearby(context.Background(), geo.Point{Lat: 1.3, Lng: 103.9})
		require.NoError(t, err)
		require.Equal(t, Place{Name: "Starbucks", PlaceID: "sb", PlaceType: "Cafe"}, got)
	})

	t.Run("no places is not an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewGoogleClient(server.URL, "secret", time.Second)
		got, err := client.Nearby(context.Background(), geo.Point{})
		require.NoError(t, err)
		require.Empty(t, got.Name)
	})

	t.Run("surfaces api error message", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
		}))
		defer server.Close()

		client := NewGoogleClient(server.URL, "secret", time.Second)
		_, err := client.Nearby(context.Background(), geo.Point{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "status 403")
		require.Contains(t, err.Error(), "API key not valid")
	})

	t.Run("requires an api key", func(t *testing.T) {
		t.Parallel()

		client := NewGoogleClient("", "  ", time.Second)
		_, err := client.Nearby(context.Background(), geo.Point{})
		require.ErrorIs(t, err, errMissingAPIKey)
	})
}

func TestPlaceTypeLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Museum", placeTypeLabel([]string{"point_of_interest_x", "museum"}))
	assert.Equal(t, "Ice Rink", placeTypeLabel([]string{"ice_rink"}))
	assert.Equal(t, "", placeTypeLabel(nil))
}

func TestCachedLookup(t *testing.T) {
	t.Parallel()

	inner := &stubLookup{place: Place{Name: "Shibuya Crossing"}}
	cache := NewCachedLookup(inner, time.Minute)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	_, err := cache.Nearby(ctx, geo.Point{Lat: 35.65951, Lng: 139.70041})
	require.NoError(t, err)
	got, err := cache.Nearby(ctx, geo.Point{Lat: 35.65953, Lng: 139.70043})
	require.NoError(t, err)
	assert.Equal(t, "Shibuya Crossing", got.Name)
	assert.Equal(t, 1, inner.calls, "nearby center should hit the cache")

	now = now.Add(2 * time.Minute)
	_, err = cache.Nearby(ctx, geo.Point{Lat: 35.65951, Lng: 139.70041})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "expired entry should be refreshed")

	inner.err = errors.New("quota exceeded")
	_, err = cache.Nearby(ctx, geo.Point{Lat: 1, Lng: 1})
	require.Error(t, err)
}
