// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketIssuedEvent is published when a booking is successfully created.
// It carries everything the print spool needs to render a ticket without
// querying the primary database, including the presentation values
// (theater name, show time) that were in effect at booking time.
type TicketIssuedEvent struct {
    BookingID    string   `json:"booking_id"`
    Theater      string   `json:"theater"`
    Screen       string   `json:"screen"`
    Movie        string   `json:"movie"`
    Date         string   `json:"date"`
    Show         string   `json:"show"`
    ShowTime     string   `json:"show_time"`
    Class        string   `json:"class"`
    Seats        []string `json:"seats"`
    PricePerSeat float64  `json:"price_per_seat"`
    TotalPrice   float64  `json:"total_price"`
    BookedAt     string   `json:"booked_at"`
    IssuedAt     string   `json:"issued_at"`
}
