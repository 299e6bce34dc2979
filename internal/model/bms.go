package model

import "time"

// BmsBooking is one seat sold through the external BMS portal and
// keyed into the system by the owner.  The BMS channel carries no
// price; stats estimate its takings through the pricing resolver.
// Within the channel a seat can be sold only once per slot, but the
// ledger and the BMS table hold no constraint against each other, so
// a cross-channel double sale is representable.  The seat registry
// resolves such a seat as BOOKED.
//
// Fields:
//  ID         – primary key.
//  SeatID     – seat identifier, "<row>-<number>".
//  Date       – screening date in DateLayout form.
//  Show       – screening slot.
//  ClassLabel – seating class of the seat.
//  CreatedAt  – when the record was keyed in (UTC).
type BmsBooking struct {
    ID         uint64    // bms_bookings.id
    SeatID     string    // bms_bookings.seat_id
    Date       string    // bms_bookings.booking_date
    Show       Show      // bms_bookings.show_slot
    ClassLabel string    // bms_bookings.class_label
    CreatedAt  time.Time // bms_bookings.created_at
}
