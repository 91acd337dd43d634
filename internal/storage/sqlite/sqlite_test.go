package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/tripwrap/internal/models"
	"github.com/mmynk/tripwrap/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("migrations are applied", func(t *testing.T) {
		version, dirty, err := schemaVersion(store.db)
		if err != nil {
			t.Fatalf("schemaVersion failed: %v", err)
		}
		if version != 1 || dirty {
			t.Errorf("Expected clean version 1, got %d (dirty=%v)", version, dirty)
		}
	})

	t.Run("CreateTrip generates ID and name", func(t *testing.T) {
		trip := &models.Trip{Members: []string{"alice", "bob"}}
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		if trip.ID == "" {
			t.Error("Expected trip ID to be generated")
		}
		if trip.Name != "Trip with alice, bob" {
			t.Errorf("Name = %q", trip.Name)
		}
		if trip.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if trip.BaseCurrency != "USD" {
			t.Errorf("BaseCurrency = %q, want USD", trip.BaseCurrency)
		}
	})

	t.Run("GetTrip retrieves members in order", func(t *testing.T) {
		original := &models.Trip{
			Name:         "Tokyo 2024",
			StartDate:    "2024-03-01",
			EndDate:      "2024-03-07",
			BaseCurrency: "JPY",
			BudgetPerPax: 150000,
			Members:      []string{"carol", "alice", "carol", "bob"},
		}
		if err := store.CreateTrip(ctx, original); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		got, err := store.GetTrip(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if got.Name != original.Name || got.StartDate != "2024-03-01" || got.BaseCurrency != "JPY" {
			t.Errorf("Trip mismatch: %+v", got)
		}
		if got.BudgetPerPax != 150000 {
			t.Errorf("BudgetPerPax = %f", got.BudgetPerPax)
		}
		want := []string{"carol", "alice", "bob"}
		if len(got.Members) != len(want) {
			t.Fatalf("Members = %v, want %v", got.Members, want)
		}
		for i := range want {
			if got.Members[i] != want[i] {
				t.Errorf("Members[%d] = %s, want %s", i, got.Members[i], want[i])
			}
		}
	})

	t.Run("GetTrip returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetTrip(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestTransactions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Name: "Test", Members: []string{"a", "b"}}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	first := &models.Transaction{
		TripID:       trip.ID,
		Amount:       90,
		Currency:     "JPY",
		Description:  "Ramen",
		PaidBy:       "a",
		SplitBetween: []string{"a", "b", "a"},
		Timestamp:    "2024-03-01T12:00:00Z",
		CategoryID:   "food",
		CreatedAt:    100,
	}
	second := &models.Transaction{
		TripID:                 trip.ID,
		Amount:                 10,
		PaidBy:                 "b",
		CustomSplitAmountsJSON: `{"a":10}`,
		CreatedAt:              200,
	}
	for _, tx := range []*models.Transaction{first, second} {
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
	}

	t.Run("ListTransactions keeps split order and duplicates", func(t *testing.T) {
		txs, err := store.ListTransactions(ctx, trip.ID)
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(txs) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(txs))
		}
		if txs[0].ID != first.ID {
			t.Errorf("Expected oldest first")
		}
		got := txs[0].SplitBetween
		if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "a" {
			t.Errorf("SplitBetween = %v", got)
		}
		if txs[0].CategoryID != "food" || txs[0].Currency != "JPY" {
			t.Errorf("Fields not round-tripped: %+v", txs[0])
		}
		if txs[1].CustomSplitAmountsJSON != `{"a":10}` || len(txs[1].SplitBetween) != 0 {
			t.Errorf("Custom split not round-tripped: %+v", txs[1])
		}
	})

	t.Run("DeleteTransaction removes it", func(t *testing.T) {
		if err := store.DeleteTransaction(ctx, first.ID); err != nil {
			t.Fatalf("DeleteTransaction failed: %v", err)
		}
		txs, err := store.ListTransactions(ctx, trip.ID)
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(txs) != 1 || txs[0].ID != second.ID {
			t.Errorf("Unexpected transactions after delete: %+v", txs)
		}

		var splits int
		if err := store.db.QueryRow("SELECT COUNT(*) FROM transaction_splits WHERE transaction_id = ?", first.ID).Scan(&splits); err != nil {
			t.Fatalf("count splits: %v", err)
		}
		if splits != 0 {
			t.Errorf("Expected splits to cascade, got %d", splits)
		}
	})

	t.Run("DeleteTransaction returns ErrNotFound", func(t *testing.T) {
		err := store.DeleteTransaction(ctx, first.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CreateTransaction on unknown trip", func(t *testing.T) {
		err := store.CreateTransaction(ctx, &models.Transaction{TripID: "missing", Amount: 1, PaidBy: "a"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestMedia(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Name: "Test"}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	geotagged := models.Media{
		TripID:      trip.ID,
		StoragePath: "trip/a.jpg",
		UploadedBy:  "a",
		Timestamp:   "2024-03-01T10:00:00Z",
		IsFavorite:  true,
		Rating:      4,
		Review:      "great view",
	}.WithLocation(0, 139.7)
	plain := &models.Media{TripID: trip.ID, StoragePath: "trip/b.mp4", Timestamp: "2024-03-01T09:00:00Z"}

	for _, m := range []*models.Media{&geotagged, plain} {
		if err := store.CreateMedia(ctx, m); err != nil {
			t.Fatalf("CreateMedia failed: %v", err)
		}
	}

	media, err := store.ListMedia(ctx, trip.ID)
	if err != nil {
		t.Fatalf("ListMedia failed: %v", err)
	}
	if len(media) != 2 {
		t.Fatalf("Expected 2 media, got %d", len(media))
	}
	if media[0].ID != plain.ID {
		t.Errorf("Expected media ordered by timestamp")
	}
	if _, ok := media[0].Location(); ok {
		t.Error("Expected no location for plain media")
	}
	p, ok := media[1].Location()
	if !ok || p.Lat != 0 || p.Lng != 139.7 {
		t.Errorf("Location = %+v, %v", p, ok)
	}
	if !media[1].IsFavorite || media[1].Rating != 4 || media[1].Review != "great view" {
		t.Errorf("Fields not round-tripped: %+v", media[1])
	}

	t.Run("UpdateMediaLocation caches name", func(t *testing.T) {
		if err := store.UpdateMediaLocation(ctx, geotagged.ID, "Tokyo Tower", "place-1"); err != nil {
			t.Fatalf("UpdateMediaLocation failed: %v", err)
		}
		if err := store.UpdateMediaLocation(ctx, geotagged.ID, "Tokyo Tower", ""); err != nil {
			t.Fatalf("UpdateMediaLocation failed: %v", err)
		}
		media, err := store.ListMedia(ctx, trip.ID)
		if err != nil {
			t.Fatalf("ListMedia failed: %v", err)
		}
		if media[1].LocationName != "Tokyo Tower" || media[1].GooglePlaceID != "place-1" {
			t.Errorf("Location not cached: %+v", media[1])
		}
	})

	t.Run("UpdateMediaLocation returns ErrNotFound", func(t *testing.T) {
		err := store.UpdateMediaLocation(ctx, "missing", "x", "")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Name: "Test"}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	payments := []*models.Payment{
		{TripID: trip.ID, FromUserID: "b", ToUserID: "a", Amount: 40, CreatedAt: 1, Note: "cash"},
		{TripID: trip.ID, FromUserID: "c", ToUserID: "a", Amount: 12.5, CreatedAt: 2},
	}
	for _, p := range payments {
		if err := store.CreatePayment(ctx, p); err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}
		if p.ID == "" {
			t.Error("Expected payment ID to be generated")
		}
	}

	got, err := store.ListPayments(ctx, trip.ID)
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 payments, got %d", len(got))
	}
	if got[0].Note != "cash" || got[1].Note != "" {
		t.Errorf("Notes = %q, %q", got[0].Note, got[1].Note)
	}
	if got[1].Amount != 12.5 || got[1].FromUserID != "c" {
		t.Errorf("Payment mismatch: %+v", got[1])
	}

	other, err := store.ListPayments(ctx, "other-trip")
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("Expected no payments for other trip, got %d", len(other))
	}
}

func TestSavedLocations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, loc := range []*models.SavedLocation{
		{UserID: "a", Lat: 35.0, Lng: 139.0, Name: "Hotel"},
		{UserID: "a", Lat: 35.1, Lng: 139.1, Name: "Office"},
		{UserID: "b", Lat: 1, Lng: 1, Name: "Home"},
	} {
		if err := store.SaveLocation(ctx, loc); err != nil {
			t.Fatalf("SaveLocation failed: %v", err)
		}
	}

	got, err := store.ListSavedLocations(ctx, "a")
	if err != nil {
		t.Fatalf("ListSavedLocations failed: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Hotel" || got[1].Name != "Office" {
		t.Errorf("Saved locations = %+v", got)
	}
}
