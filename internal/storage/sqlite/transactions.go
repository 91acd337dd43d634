package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripwrap/internal/models"
	"github.com/mmynk/tripwrap/internal/storage"
)

// CreateTransaction persists an expense and its split list.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	if err := s.tripExists(ctx, t.TripID); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, trip_id, amount, currency, description, paid_by, timestamp,
		 category_id, custom_split_amounts_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.TripID, t.Amount, t.Currency, t.Description, t.PaidBy, t.Timestamp,
		t.CategoryID, t.CustomSplitAmountsJSON, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, userID := range t.SplitBetween {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO transaction_splits (transaction_id, position, user_id) VALUES (?, ?, ?)",
			t.ID, i, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListTransactions retrieves a trip's expenses in the order they were recorded.
func (s *SQLiteStore) ListTransactions(ctx context.Context, tripID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, amount, currency, description, paid_by, timestamp,
		 category_id, custom_split_amounts_json, created_at
		 FROM transactions WHERE trip_id = ? ORDER BY created_at, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	index := make(map[string]int)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.TripID, &t.Amount, &t.Currency, &t.Description, &t.PaidBy,
			&t.Timestamp, &t.CategoryID, &t.CustomSplitAmountsJSON, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		index[t.ID] = len(transactions)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	splitRows, err := s.db.QueryContext(ctx,
		`SELECT ts.transaction_id, ts.user_id
		 FROM transaction_splits ts JOIN transactions t ON t.id = ts.transaction_id
		 WHERE t.trip_id = ? ORDER BY ts.transaction_id, ts.position`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var transactionID, userID string
		if err := splitRows.Scan(&transactionID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if i, ok := index[transactionID]; ok {
			transactions[i].SplitBetween = append(transactions[i].SplitBetween, userID)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return transactions, nil
}

// DeleteTransaction removes an expense by ID. Its splits cascade.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, transactionID string) error {
	// Check if expense exists
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM transactions WHERE id = ?", transactionID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("expense %s: %w", transactionID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check expense existence: %w", err)
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}
