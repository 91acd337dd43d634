// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tripwrap/internal/models"
	"github.com/mmynk/tripwrap/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver. The pragma applies to every
	// pooled connection so cascading deletes always fire.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if version, dirty, err := schemaVersion(db); err == nil {
		slog.Debug("Schema ready", "version", version, "dirty", dirty)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTrip persists a new trip and its members.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	// Generate IDs if not set
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}
	if trip.BaseCurrency == "" {
		trip.BaseCurrency = models.DefaultBaseCurrency
	}
	if trip.Name == "" {
		trip.Name = generateName(trip.Members)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO trips (id, name, trip_code, start_date, end_date, base_currency, budget_per_pax, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.Name, trip.TripCode, trip.StartDate, trip.EndDate,
		trip.BaseCurrency, trip.BudgetPerPax, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	// Insert members, skipping repeats
	seen := make(map[string]bool, len(trip.Members))
	for i, userID := range trip.Members {
		if userID == "" || seen[userID] {
			continue
		}
		seen[userID] = true
		_, err = tx.ExecContext(ctx,
			"INSERT INTO trip_members (trip_id, user_id, position) VALUES (?, ?, ?)",
			trip.ID, userID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTrip retrieves a trip by ID, including its members in join order.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, trip_code, start_date, end_date, base_currency, budget_per_pax, created_at
		 FROM trips WHERE id = ?`,
		tripID,
	).Scan(&trip.ID, &trip.Name, &trip.TripCode, &trip.StartDate, &trip.EndDate,
		&trip.BaseCurrency, &trip.BudgetPerPax, &trip.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM trip_members WHERE trip_id = ? ORDER BY position",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan trip member: %w", err)
		}
		trip.Members = append(trip.Members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trip members: %w", err)
	}

	return trip, nil
}

// tripExists returns storage.ErrNotFound when tripID has no row.
func (s *SQLiteStore) tripExists(ctx context.Context, tripID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE id = ?", tripID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}
	return nil
}

// generateName creates an auto-generated trip name from members.
func generateName(members []string) string {
	if len(members) == 0 {
		return fmt.Sprintf("Trip - %s", time.Now().Format("Jan 2, 2006"))
	}
	if len(members) <= 3 {
		return fmt.Sprintf("Trip with %s", strings.Join(members, ", "))
	}
	return fmt.Sprintf("Trip with %s and %d others",
		strings.Join(members[:2], ", "),
		len(members)-2,
	)
}
