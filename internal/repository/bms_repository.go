package repository

import (
	"context"
	"database/sql"
	"time"

	"boxoffice/internal/model"
)

// BmsRepo provides data access to the bms_bookings table, the seats
// the owner keys in from the external BMS portal.  The channel has
// no prices of its own; stats estimate income from the class labels.
type BmsRepo struct {
	db *sql.DB
}

// NewBmsRepo constructs a BmsRepo with the given DB handle.
func NewBmsRepo(db *sql.DB) *BmsRepo {
	return &BmsRepo{db: db}
}

// CreateBulk inserts one row per seat in a single statement.  The
// unique key on (booking_date, show_slot, seat_id) rejects seats
// already keyed in for the slot and fails the whole batch, so a
// partial import never happens.
func (r *BmsRepo) CreateBulk(ctx context.Context, entries []model.BmsBooking) error {
	if len(entries) == 0 {
		return nil
	}
	query := `INSERT INTO bms_bookings (seat_id, booking_date, show_slot, class_label, created_at) VALUES `
	args := make([]interface{}, 0, len(entries)*5)
	for i, e := range entries {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, e.SeatID, e.Date, string(e.Show), e.ClassLabel, e.CreatedAt)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// List returns BMS records for a date, optionally narrowed to one
// slot, newest first.
func (r *BmsRepo) List(ctx context.Context, date string, show model.Show) ([]model.BmsBooking, error) {
	q := `SELECT id, seat_id, booking_date, show_slot, class_label, created_at
	      FROM bms_bookings WHERE booking_date = ?`
	args := []interface{}{date}
	if show != "" {
		q += " AND show_slot = ?"
		args = append(args, string(show))
	}
	q += " ORDER BY created_at DESC, id DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.BmsBooking, 0)
	for rows.Next() {
		var e model.BmsBooking
		var d time.Time
		var slot string
		if err := rows.Scan(&e.ID, &e.SeatID, &d, &slot, &e.ClassLabel, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Date = d.Format(model.DateLayout)
		e.Show = model.Show(slot)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SeatsForSlot returns every seat the BMS channel holds for a slot.
func (r *BmsRepo) SeatsForSlot(ctx context.Context, date string, show model.Show) ([]string, error) {
	const q = `SELECT seat_id FROM bms_bookings WHERE booking_date = ? AND show_slot = ?`
	rows, err := r.db.QueryContext(ctx, q, date, string(show))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var seats []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		seats = append(seats, id)
	}
	return seats, rows.Err()
}

// Delete removes one BMS record.  Returns sql.ErrNoRows for an
// unknown ID.
func (r *BmsRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bms_bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByClass counts BMS seats per class label for a date, narrowed
// to one slot when show is set.  The caller prices the classes.
func (r *BmsRepo) CountByClass(ctx context.Context, date string, show model.Show) (map[string]int, error) {
	q := `SELECT class_label, COUNT(*) FROM bms_bookings WHERE booking_date = ?`
	args := []interface{}{date}
	if show != "" {
		q += " AND show_slot = ?"
		args = append(args, string(show))
	}
	q += " GROUP BY class_label"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var class string
		var n int
		if err := rows.Scan(&class, &n); err != nil {
			return nil, err
		}
		out[class] = n
	}
	return out, rows.Err()
}
