package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "boxoffice/internal/model"
)

// SelectionRepo provides data access to the seat_selections table.
// Selections are advisory holds with a short TTL; expiry is lazy and
// happens inside the write transactions, so the read path only ever
// filters on expires_at.  All comparisons run in UTC.
type SelectionRepo struct {
    db *sql.DB
}

// NewSelectionRepo returns a new SelectionRepo bound to the provided database.
func NewSelectionRepo(db *sql.DB) *SelectionRepo { return &SelectionRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span several repositories.
func (r *SelectionRepo) DB() *sql.DB { return r.db }

// ExpireTx removes all selections for a slot whose expires_at has
// passed.  The caller must supply an existing transaction and is
// responsible for committing or rolling back.
func (r *SelectionRepo) ExpireTx(ctx context.Context, tx *sql.Tx, date string, show model.Show) error {
    _, err := tx.ExecContext(ctx,
        `DELETE FROM seat_selections WHERE booking_date = ? AND show_slot = ? AND expires_at <= UTC_TIMESTAMP()`,
        date, string(show),
    )
    return err
}

// ForeignActiveTx returns which of the given seats are currently held
// by a different terminal.  The rows are locked for the transaction
// so a refresh cannot race the check.
func (r *SelectionRepo) ForeignActiveTx(ctx context.Context, tx *sql.Tx, date string, show model.Show, terminalID string, seats []string) ([]string, error) {
    if len(seats) == 0 {
        return nil, nil
    }
    placeholders := make([]string, 0, len(seats))
    args := []interface{}{date, string(show), terminalID}
    for _, s := range seats {
        placeholders = append(placeholders, "?")
        args = append(args, s)
    }
    q := `SELECT seat_id FROM seat_selections
          WHERE booking_date = ? AND show_slot = ? AND terminal_id <> ?
            AND expires_at > UTC_TIMESTAMP()
            AND seat_id IN (` + strings.Join(placeholders, ",") + `)
          FOR UPDATE`
    rows, err := tx.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var taken []string
    for rows.Next() {
        var id string
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        taken = append(taken, id)
    }
    return taken, rows.Err()
}

// ReplaceTx refreshes the terminal's hold on the given seats: its own
// rows for them are dropped and re-inserted with the new expiry.  A
// foreign hold that slipped in past the ForeignActiveTx check makes
// the insert fail on the unique key, which the caller reports as a
// conflict.  Passing an empty seat list is a no-op.
func (r *SelectionRepo) ReplaceTx(ctx context.Context, tx *sql.Tx, terminalID, date string, show model.Show, seats []string, expiresAt time.Time) error {
    if len(seats) == 0 {
        return nil
    }
    placeholders := make([]string, 0, len(seats))
    delArgs := []interface{}{terminalID, date, string(show)}
    for _, s := range seats {
        placeholders = append(placeholders, "?")
        delArgs = append(delArgs, s)
    }
    delQ := `DELETE FROM seat_selections
             WHERE terminal_id = ? AND booking_date = ? AND show_slot = ?
               AND seat_id IN (` + strings.Join(placeholders, ",") + `)`
    if _, err := tx.ExecContext(ctx, delQ, delArgs...); err != nil {
        return err
    }

    insQ := `INSERT INTO seat_selections (terminal_id, booking_date, show_slot, seat_id, expires_at, created_at) VALUES `
    args := make([]interface{}, 0, len(seats)*5)
    for i, s := range seats {
        if i > 0 {
            insQ += ","
        }
        insQ += "(?, ?, ?, ?, ?, UTC_TIMESTAMP())"
        args = append(args, terminalID, date, string(show), s, expiresAt.UTC().Format("2006-01-02 15:04:05"))
    }
    _, err := tx.ExecContext(ctx, insQ, args...)
    return err
}

// DeleteForSeatsTx removes selections covering the given seats no
// matter which terminal holds them.  Booking those seats consumes
// the holds.
func (r *SelectionRepo) DeleteForSeatsTx(ctx context.Context, tx *sql.Tx, date string, show model.Show, seats []string) error {
    if len(seats) == 0 {
        return nil
    }
    placeholders := make([]string, 0, len(seats))
    args := []interface{}{date, string(show)}
    for _, s := range seats {
        placeholders = append(placeholders, "?")
        args = append(args, s)
    }
    q := `DELETE FROM seat_selections
          WHERE booking_date = ? AND show_slot = ?
            AND seat_id IN (` + strings.Join(placeholders, ",") + `)`
    _, err := tx.ExecContext(ctx, q, args...)
    return err
}

// Release drops every selection the terminal holds for the slot and
// returns how many were removed.
func (r *SelectionRepo) Release(ctx context.Context, terminalID, date string, show model.Show) (int64, error) {
    res, err := r.db.ExecContext(ctx,
        `DELETE FROM seat_selections WHERE terminal_id = ? AND booking_date = ? AND show_slot = ?`,
        terminalID, date, string(show),
    )
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// ActiveForSlot returns the seats currently selected for a slot,
// expired holds filtered out rather than deleted.
func (r *SelectionRepo) ActiveForSlot(ctx context.Context, date string, show model.Show) ([]string, error) {
    const q = `SELECT seat_id FROM seat_selections
               WHERE booking_date = ? AND show_slot = ? AND expires_at > UTC_TIMESTAMP()`
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
