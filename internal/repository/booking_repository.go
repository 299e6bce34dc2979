package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "boxoffice/internal/model"
)

// BookingRepo provides storage operations for the booking ledger and
// its seat rows.  Bookings are insert-only apart from the synced
// flag; corrections happen by deleting and re-selling.  All
// timestamps are stored in UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span several repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// BookingFilter narrows List.  Zero values mean "no filter"; Synced
// uses a pointer so false can be asked for explicitly.
type BookingFilter struct {
    Date   string
    Show   model.Show
    Movie  string
    Synced *bool
    Limit  int
    Offset int
}

// CreateTx inserts the booking row within an existing transaction.
// The caller owns commit and rollback.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
    const q = `INSERT INTO bookings
               (id, booking_date, show_slot, screen, movie, class_label, price_per_seat, total_price, booked_at, synced, created_by)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    _, err := tx.ExecContext(ctx, q,
        b.ID, b.Date, string(b.Show), b.Screen, b.Movie, b.ClassLabel,
        b.PricePerSeat, b.TotalPrice, b.BookedAt, b.Synced, b.CreatedBy,
    )
    return err
}

// CreateSeatsBulkTx inserts the booking's seat rows in a single
// statement.  The unique key on (booking_date, show_slot, seat_id)
// turns an overlapping sale into a duplicate-key error, which the
// caller maps to a conflict.  An empty seat list is a no-op.
func (r *BookingRepo) CreateSeatsBulkTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
    if len(b.Seats) == 0 {
        return nil
    }
    query := `INSERT INTO booking_seats (booking_id, booking_date, show_slot, seat_id) VALUES `
    args := make([]interface{}, 0, len(b.Seats)*4)
    for i, seatID := range b.Seats {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?)"
        args = append(args, b.ID, b.Date, string(b.Show), seatID)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// GetByID returns one booking with its seats.  sql.ErrNoRows is
// returned when the booking does not exist.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
    const q = `SELECT id, booking_date, show_slot, screen, movie, class_label,
                      price_per_seat, total_price, booked_at, synced, created_by
               FROM bookings WHERE id = ?`
    b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        return nil, err
    }
    seats, err := r.seatsForBookings(ctx, []string{b.ID})
    if err != nil {
        return nil, err
    }
    b.Seats = seats[b.ID]
    if b.Seats == nil {
        b.Seats = []string{}
    }
    return b, nil
}

// List returns bookings matching the filter, newest first, with
// their seats populated.  When no booking matches, an empty slice is
// returned.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]model.Booking, error) {
    q := `SELECT id, booking_date, show_slot, screen, movie, class_label,
                 price_per_seat, total_price, booked_at, synced, created_by
          FROM bookings`
    var conds []string
    var args []interface{}
    if f.Date != "" {
        conds = append(conds, "booking_date = ?")
        args = append(args, f.Date)
    }
    if f.Show != "" {
        conds = append(conds, "show_slot = ?")
        args = append(args, string(f.Show))
    }
    if f.Movie != "" {
        conds = append(conds, "movie = ?")
        args = append(args, f.Movie)
    }
    if f.Synced != nil {
        conds = append(conds, "synced = ?")
        args = append(args, *f.Synced)
    }
    if len(conds) > 0 {
        q += " WHERE " + strings.Join(conds, " AND ")
    }
    q += " ORDER BY booked_at DESC, id"
    limit := f.Limit
    if limit <= 0 {
        limit = 100
    }
    if limit > 500 {
        limit = 500
    }
    q += " LIMIT ?"
    args = append(args, limit)
    if f.Offset > 0 {
        q += " OFFSET ?"
        args = append(args, f.Offset)
    }

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    bookings := make([]model.Booking, 0)
    index := make(map[string]int)
    var ids []string
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        b.Seats = []string{}
        index[b.ID] = len(bookings)
        ids = append(ids, b.ID)
        bookings = append(bookings, *b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(bookings) == 0 {
        return bookings, nil
    }
    // Populate seats for all bookings in a single query.
    seats, err := r.seatsForBookings(ctx, ids)
    if err != nil {
        return nil, err
    }
    for id, list := range seats {
        if idx, ok := index[id]; ok {
            bookings[idx].Seats = list
        }
    }
    return bookings, nil
}

// MarkSynced flips the synced flag, the only mutation a booking
// supports.  sql.ErrNoRows is returned for an unknown ID.
func (r *BookingRepo) MarkSynced(ctx context.Context, id string, synced bool) error {
    res, err := r.db.ExecContext(ctx, `UPDATE bookings SET synced = ? WHERE id = ?`, synced, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // The update may also be a no-op because the flag already
        // had the value; treat only a missing row as not found.
        var exists int
        if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ?`, id).Scan(&exists); err != nil {
            return err
        }
    }
    return nil
}

// Delete removes a booking; the seat rows cascade.  sql.ErrNoRows is
// returned for an unknown ID.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return sql.ErrNoRows
    }
    return nil
}

// SeatsForSlot returns every seat the ledger holds for a slot.
func (r *BookingRepo) SeatsForSlot(ctx context.Context, date string, show model.Show) ([]string, error) {
    const q = `SELECT seat_id FROM booking_seats WHERE booking_date = ? AND show_slot = ?`
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

// StatsForSlot aggregates the ledger side of the dashboard numbers.
// An empty show widens the window to the whole date.  BMS fields are
// left zero for the caller to fill in.
func (r *BookingRepo) StatsForSlot(ctx context.Context, date string, show model.Show) (model.BookingStats, error) {
    var stats model.BookingStats
    q := `SELECT COUNT(*),
                 COALESCE(SUM(total_price), 0),
                 COALESCE(SUM(CASE WHEN class_label = ? THEN total_price ELSE 0 END), 0)
          FROM bookings WHERE booking_date = ?`
    args := []interface{}{model.ClassBox, date}
    if show != "" {
        q += " AND show_slot = ?"
        args = append(args, string(show))
    }
    if err := r.db.QueryRowContext(ctx, q, args...).Scan(&stats.Bookings, &stats.LocalIncome, &stats.VipIncome); err != nil {
        return stats, err
    }

    sq := `SELECT COUNT(*) FROM booking_seats WHERE booking_date = ?`
    sargs := []interface{}{date}
    if show != "" {
        sq += " AND show_slot = ?"
        sargs = append(sargs, string(show))
    }
    if err := r.db.QueryRowContext(ctx, sq, sargs...).Scan(&stats.SeatsSold); err != nil {
        return stats, err
    }
    return stats, nil
}

// StatsByShow breaks a date's ledger takings down per slot.  Slots
// without sales are present with zeroes so the dashboard renders a
// full day.
func (r *BookingRepo) StatsByShow(ctx context.Context, date string) (map[model.Show]model.ShowStats, error) {
    out := make(map[model.Show]model.ShowStats, len(model.AllShows))
    for _, s := range model.AllShows {
        out[s] = model.ShowStats{}
    }

    const q = `SELECT show_slot, COUNT(*), COALESCE(SUM(total_price), 0)
               FROM bookings WHERE booking_date = ? GROUP BY show_slot`
    rows, err := r.db.QueryContext(ctx, q, date)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var slot string
        var st model.ShowStats
        if err := rows.Scan(&slot, &st.Bookings, &st.Income); err != nil {
            return nil, err
        }
        if show, ok := model.ParseShow(slot); ok {
            st.SeatsSold = out[show].SeatsSold
            out[show] = st
        }
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }

    const sq = `SELECT show_slot, COUNT(*)
                FROM booking_seats WHERE booking_date = ? GROUP BY show_slot`
    srows, err := r.db.QueryContext(ctx, sq, date)
    if err != nil {
        return nil, err
    }
    defer srows.Close()
    for srows.Next() {
        var slot string
        var n int
        if err := srows.Scan(&slot, &n); err != nil {
            return nil, err
        }
        if show, ok := model.ParseShow(slot); ok {
            st := out[show]
            st.SeatsSold = n
            out[show] = st
        }
    }
    return out, srows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
    Scan(dest ...interface{}) error
}

func scanBooking(s scanner) (*model.Booking, error) {
    var b model.Booking
    var date time.Time
    var slot string
    if err := s.Scan(
        &b.ID, &date, &slot, &b.Screen, &b.Movie, &b.ClassLabel,
        &b.PricePerSeat, &b.TotalPrice, &b.BookedAt, &b.Synced, &b.CreatedBy,
    ); err != nil {
        return nil, err
    }
    b.Date = date.Format(model.DateLayout)
    b.Show = model.Show(slot)
    b.BookedAt = b.BookedAt.UTC()
    return &b, nil
}

// seatsForBookings loads the seat lists for a set of bookings in one
// query.  LENGTH before the lexicographic order keeps A-2 ahead of
// A-10 within a row.
func (r *BookingRepo) seatsForBookings(ctx context.Context, ids []string) (map[string][]string, error) {
    if len(ids) == 0 {
        return map[string][]string{}, nil
    }
    placeholders := make([]string, 0, len(ids))
    args := make([]interface{}, 0, len(ids))
    for _, id := range ids {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    q := `SELECT booking_id, seat_id FROM booking_seats
          WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
          ORDER BY booking_id, LENGTH(seat_id), seat_id`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make(map[string][]string, len(ids))
    for rows.Next() {
        var bookingID, seatID string
        if err := rows.Scan(&bookingID, &seatID); err != nil {
            return nil, err
        }
        out[bookingID] = append(out[bookingID], seatID)
    }
    return out, rows.Err()
}
