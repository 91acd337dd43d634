// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripwrap/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTrip persists a new trip. ID and CreatedAt are assigned when empty.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip by ID, including its members.
	// Returns ErrNotFound if the trip does not exist.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// CreateTransaction persists a new expense.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// ListTransactions returns a trip's expenses, oldest first.
	ListTransactions(ctx context.Context, tripID string) ([]models.Transaction, error)

	// DeleteTransaction removes an expense.
	// Returns ErrNotFound if it does not exist.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// CreateMedia persists a media record.
	CreateMedia(ctx context.Context, media *models.Media) error

	// ListMedia returns a trip's media ordered by capture time.
	ListMedia(ctx context.Context, tripID string) ([]models.Media, error)

	// UpdateMediaLocation caches a resolved place name on a media record.
	// An empty placeID leaves any stored place ID untouched.
	UpdateMediaLocation(ctx context.Context, mediaID, locationName, placeID string) error

	// CreatePayment records a settlement that members have paid.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPayments returns a trip's recorded payments, oldest first.
	ListPayments(ctx context.Context, tripID string) ([]models.Payment, error)

	// SaveLocation stores a user's named location.
	SaveLocation(ctx context.Context, loc *models.SavedLocation) error

	// ListSavedLocations returns a user's named locations.
	ListSavedLocations(ctx context.Context, userID string) ([]models.SavedLocation, error)

	// Close releases any resources held by the store.
	Close() error
}
