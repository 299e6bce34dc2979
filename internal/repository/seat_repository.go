package repository // repository defines data access for the seat inventory

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives

	"boxoffice/internal/model"
)

// SeatRepo provides methods to work with the seat inventory.  The
// inventory is seeded at startup; at runtime only the is_active flag
// changes, through the block and unblock endpoints.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// ListAll retrieves the whole layout ordered by row_label then seat_number.
func (r *SeatRepo) ListAll(ctx context.Context) ([]model.Seat, error) {
	const q = `SELECT seat_id, row_label, seat_number, class_label, is_active, created_at
	           FROM seats
	           ORDER BY row_label, seat_number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(
			&s.SeatID, &s.RowLabel, &s.SeatNumber, &s.ClassLabel, &s.IsActive, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get retrieves a single seat by its identifier.
func (r *SeatRepo) Get(ctx context.Context, seatID string) (*model.Seat, error) {
	const q = `SELECT seat_id, row_label, seat_number, class_label, is_active, created_at
	           FROM seats WHERE seat_id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, seatID).
		Scan(&s.SeatID, &s.RowLabel, &s.SeatNumber, &s.ClassLabel, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SetActive flips the availability flag of one seat.  Returns
// sql.ErrNoRows when the seat does not exist in the inventory.
func (r *SeatRepo) SetActive(ctx context.Context, seatID string, active bool) error {
	const q = `UPDATE seats SET is_active = ? WHERE seat_id = ?`
	res, err := r.db.ExecContext(ctx, q, active, seatID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "already in that state" from "no such seat".
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM seats WHERE seat_id = ?`, seatID).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}
