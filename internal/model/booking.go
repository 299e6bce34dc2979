package model

import "time"

// DateLayout is the wire and storage form of a screening date.
// Dates are plain calendar days in the theater's local reckoning;
// no time zone arithmetic is ever applied to them.
const DateLayout = "2006-01-02"

// Booking records one box-office sale: a set of seats in a single
// (date, show) slot sold at a uniform per-seat price.  Seats live in
// child rows (booking_seats) so the database can enforce that no two
// bookings of the same slot share a seat; the struct carries them
// denormalized for transport.
//
// Fields:
//  ID           – primary key (UUID).
//  Date         – screening date in DateLayout form.
//  Show         – screening slot.
//  Screen       – auditorium name stamped at sale time.
//  Movie        – movie title stamped at sale time.
//  ClassLabel   – seating class of the booked seats.
//  PricePerSeat – uniform price charged per seat.
//  TotalPrice   – PricePerSeat multiplied by the seat count.
//  Seats        – booked seat identifiers.
//  BookedAt     – sale timestamp (UTC).
//  Synced       – whether the sale has been exported to the office
//                 ledger.
//  CreatedBy    – terminal that sold the booking.
type Booking struct {
    ID           string    // bookings.id
    Date         string    // bookings.booking_date
    Show         Show      // bookings.show_slot
    Screen       string    // bookings.screen
    Movie        string    // bookings.movie
    ClassLabel   string    // bookings.class_label
    PricePerSeat float64   // bookings.price_per_seat
    TotalPrice   float64   // bookings.total_price
    Seats        []string  // booking_seats.seat_id, aggregated
    BookedAt     time.Time // bookings.booked_at
    Synced       bool      // bookings.synced
    CreatedBy    string    // bookings.created_by
}

// BookingStats aggregates takings for the owner dashboard, either
// across a whole day or narrowed to one slot.  BMS income is
// estimated through the pricing resolver because BMS records carry
// no price of their own.
type BookingStats struct {
    Bookings    int     // number of box-office sales
    SeatsSold   int     // seats across those sales
    BmsSeats    int     // seats sold through the BMS channel
    LocalIncome float64 // sum of box-office totals
    BmsIncome   float64 // estimated BMS takings
    VipIncome   float64 // box-office takings from BOX class sales
    TotalIncome float64 // LocalIncome + BmsIncome
}

// ShowStats is the per-slot slice of a day's statistics.
type ShowStats struct {
    Bookings  int
    SeatsSold int
    Income    float64
}
