package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/tripwrap/internal/models"
)

// SaveLocation stores a user's named location.
func (s *SQLiteStore) SaveLocation(ctx context.Context, loc *models.SavedLocation) error {
	if loc.ID == "" {
		loc.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO saved_locations (id, user_id, lat, lng, name) VALUES (?, ?, ?, ?, ?)",
		loc.ID, loc.UserID, loc.Lat, loc.Lng, loc.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert saved location: %w", err)
	}

	return nil
}

// ListSavedLocations retrieves a user's named locations in the order saved.
func (s *SQLiteStore) ListSavedLocations(ctx context.Context, userID string) ([]models.SavedLocation, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, lat, lng, name FROM saved_locations WHERE user_id = ? ORDER BY rowid",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved locations: %w", err)
	}
	defer rows.Close()

	var locations []models.SavedLocation
	for rows.Next() {
		var loc models.SavedLocation
		if err := rows.Scan(&loc.ID, &loc.UserID, &loc.Lat, &loc.Lng, &loc.Name); err != nil {
			return nil, fmt.Errorf("failed to scan saved location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved locations: %w", err)
	}

	return locations, nil
}
