package model

import "time"

// SeatSelection marks a seat some terminal currently holds in its
// cart for a (date, show) slot.  Selections are advisory: they feed
// the SELECTED status other terminals see, expire on their own and
// are cleared when the seats are actually booked.  A booking is
// never blocked by the absence of a selection.
//
// Fields:
//  ID         – primary key.
//  TerminalID – session identifier of the holding terminal.
//  Date       – screening date in DateLayout form.
//  Show       – screening slot.
//  SeatID     – held seat identifier.
//  ExpiresAt  – instant the hold lapses (UTC).
//  CreatedAt  – creation timestamp.
type SeatSelection struct {
    ID         uint64    // seat_selections.id
    TerminalID string    // seat_selections.terminal_id
    Date       string    // seat_selections.booking_date
    Show       Show      // seat_selections.show_slot
    SeatID     string    // seat_selections.seat_id
    ExpiresAt  time.Time // seat_selections.expires_at
    CreatedAt  time.Time // seat_selections.created_at
}
