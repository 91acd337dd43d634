package models

import (
	"regexp"

	"github.com/mmynk/tripwrap/internal/geo"
)

// Media represents an uploaded photo or video.
// The file itself lives in external object storage under StoragePath.
type Media struct {
	// ID is the unique identifier for the media item (UUID format).
	ID string `json:"id" yaml:"id"`

	// TripID is the trip this media belongs to.
	TripID string `json:"tripId,omitempty" yaml:"tripId,omitempty"`

	// StoragePath is the object-store key of the file.
	StoragePath string `json:"storagePath" yaml:"storagePath"`

	// UploadedBy is the user ID of the uploader.
	UploadedBy string `json:"uploadedBy,omitempty" yaml:"uploadedBy,omitempty"`

	// UploadedByUsername is the uploader's display name at upload time.
	UploadedByUsername string `json:"uploadedByUsername,omitempty" yaml:"uploadedByUsername,omitempty"`

	// Lat and Lng are the capture coordinates, nil when the file had no GPS data.
	Lat *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty" yaml:"lng,omitempty"`

	// Timestamp is the capture time as an ISO-8601 string, empty if unknown.
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`

	// IsFavorite marks media a member starred.
	IsFavorite bool `json:"isFavorite,omitempty" yaml:"isFavorite,omitempty"`

	// Rating is a 1..5 star rating; 0 means unrated.
	Rating int `json:"rating,omitempty" yaml:"rating,omitempty"`

	// Review is a free-text comment.
	Review string `json:"review,omitempty" yaml:"review,omitempty"`

	// LocationName is the resolved place name, cached once a POI is named.
	LocationName string `json:"locationName,omitempty" yaml:"locationName,omitempty"`

	// GooglePlaceID is the place ID returned by the nearby lookup, if any.
	GooglePlaceID string `json:"googlePlaceId,omitempty" yaml:"googlePlaceId,omitempty"`
}

var videoPathRe = regexp.MustCompile(`(?i)\.(mp4|webm|ogg|mov|avi|mkv)$`)

// IsVideoPath reports whether a storage path names a video file.
func IsVideoPath(path string) bool {
	return videoPathRe.MatchString(path)
}

// IsVideo reports whether the media is a video, judged by its file extension.
func (m Media) IsVideo() bool {
	return IsVideoPath(m.StoragePath)
}

// Location returns the media's coordinates and whether both are present.
func (m Media) Location() (geo.Point, bool) {
	if m.Lat == nil || m.Lng == nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *m.Lat, Lng: *m.Lng}, true
}

// WithLocation returns a copy of m with the given coordinates set.
func (m Media) WithLocation(lat, lng float64) Media {
	m.Lat = &lat
	m.Lng = &lng
	return m
}
