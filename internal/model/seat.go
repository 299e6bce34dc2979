package model

import (
    "strings"
    "time"
)

// SeatStatus describes the state of one seat within a single
// (date, show) slot.  Statuses are derived, never stored: the seat
// registry recomputes them from the booking ledger, BMS records,
// live selections and the seat inventory on every query.
type SeatStatus string

// Seat states as reported by the registry.
const (
    SeatAvailable SeatStatus = "AVAILABLE"
    SeatSelected  SeatStatus = "SELECTED"
    SeatBooked    SeatStatus = "BOOKED"
    SeatBmsBooked SeatStatus = "BMS_BOOKED"
    SeatBlocked   SeatStatus = "BLOCKED"
)

// Seating class labels produced by the pricing resolver and stamped
// onto bookings.  ClassUnknown is the resolver's answer for rows it
// has no rule for; it prices at zero and is not an error.
const (
    ClassBox            = "BOX"
    ClassStarClass      = "STAR CLASS"
    ClassClassicBalcony = "CLASSIC BALCONY"
    ClassFirstClass     = "FIRST CLASS"
    ClassSecondClass    = "SECOND CLASS"
    ClassUnknown        = "UNKNOWN"
)

// Seat describes one physical seat of the auditorium.  The inventory
// is seeded at startup and changes only through the block/unblock
// endpoints; an inactive seat renders as BLOCKED in every slot.
//
// Fields:
//  SeatID     – full identifier, "<row>-<number>".
//  RowLabel   – row component, may itself contain hyphens.
//  SeatNumber – position of the seat within its row.
//  ClassLabel – seating class the row belongs to.
//  IsActive   – false marks the seat unsellable (broken, covered).
//  CreatedAt  – creation timestamp.
type Seat struct {
    SeatID     string    // seats.seat_id
    RowLabel   string    // seats.row_label
    SeatNumber uint32    // seats.seat_number
    ClassLabel string    // seats.class_label
    IsActive   bool      // seats.is_active
    CreatedAt  time.Time // seats.created_at
}

// SplitSeatID splits a seat identifier of the form "<row>-<number>"
// at its last hyphen.  Row labels may themselves contain hyphens
// ("SC-A-12" belongs to row "SC-A"), so splitting at the first one
// would corrupt the row.  An identifier without a hyphen is treated
// as a bare row with an empty number.
func SplitSeatID(seatID string) (row string, number string) {
    i := strings.LastIndex(seatID, "-")
    if i < 0 {
        return seatID, ""
    }
    return seatID[:i], seatID[i+1:]
}

// RowOfSeat returns just the row component of a seat identifier.
func RowOfSeat(seatID string) string {
    row, _ := SplitSeatID(seatID)
    return row
}
