package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripwrap/internal/models"
)

// CreatePayment persists a recorded payment.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if err := s.tripExists(ctx, payment.TripID); err != nil {
		return err
	}
	// Generate ID if not set
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	var note any = nil
	if payment.Note != "" {
		note = payment.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, trip_id, from_user_id, to_user_id, amount, created_at, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.TripID, payment.FromUserID, payment.ToUserID,
		payment.Amount, payment.CreatedAt, note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// ListPayments retrieves all payments recorded for a trip, oldest first.
func (s *SQLiteStore) ListPayments(ctx context.Context, tripID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, from_user_id, to_user_id, amount, created_at, note
		 FROM payments WHERE trip_id = ? ORDER BY created_at, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var payment models.Payment
		var note sql.NullString

		if err := rows.Scan(&payment.ID, &payment.TripID, &payment.FromUserID, &payment.ToUserID,
			&payment.Amount, &payment.CreatedAt, &note); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		if note.Valid {
			payment.Note = note.String
		}

		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}
