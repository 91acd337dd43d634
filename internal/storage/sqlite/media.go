package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/tripwrap/internal/models"
	"github.com/mmynk/tripwrap/internal/storage"
)

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// CreateMedia persists a media record.
func (s *SQLiteStore) CreateMedia(ctx context.Context, m *models.Media) error {
	if err := s.tripExists(ctx, m.TripID); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO media (id, trip_id, storage_path, uploaded_by, uploaded_by_username, lat, lng,
		 timestamp, is_favorite, rating, review, location_name, google_place_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.TripID, m.StoragePath, m.UploadedBy, m.UploadedByUsername,
		nullFloat(m.Lat), nullFloat(m.Lng), m.Timestamp, m.IsFavorite, m.Rating,
		m.Review, m.LocationName, m.GooglePlaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert media: %w", err)
	}

	return nil
}

// ListMedia retrieves a trip's media ordered by capture timestamp.
// Media without a timestamp come first.
func (s *SQLiteStore) ListMedia(ctx context.Context, tripID string) ([]models.Media, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, storage_path, uploaded_by, uploaded_by_username, lat, lng,
		 timestamp, is_favorite, rating, review, location_name, google_place_id
		 FROM media WHERE trip_id = ? ORDER BY timestamp, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	var media []models.Media
	for rows.Next() {
		var m models.Media
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&m.ID, &m.TripID, &m.StoragePath, &m.UploadedBy, &m.UploadedByUsername,
			&lat, &lng, &m.Timestamp, &m.IsFavorite, &m.Rating, &m.Review,
			&m.LocationName, &m.GooglePlaceID); err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		if lat.Valid && lng.Valid {
			m = m.WithLocation(lat.Float64, lng.Float64)
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate media: %w", err)
	}

	return media, nil
}

// UpdateMediaLocation caches a resolved place name on a media record.
func (s *SQLiteStore) UpdateMediaLocation(ctx context.Context, mediaID, locationName, placeID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE media SET location_name = ?,
		 google_place_id = CASE WHEN ? = '' THEN google_place_id ELSE ? END
		 WHERE id = ?`,
		locationName, placeID, placeID, mediaID,
	)
	if err != nil {
		return fmt.Errorf("failed to update media location: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated media: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("media %s: %w", mediaID, storage.ErrNotFound)
	}

	return nil
}
