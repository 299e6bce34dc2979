// Package ticket turns a booking snapshot into the structured fields
// and the plain-text counter layout the printing glue consumes. The
// server never talks to the printer; it only prepares print-ready
// content for the process that does.
package ticket

import (
    "fmt"
    "strings"
    "time"

    "boxoffice/internal/model"
)

// Ticket is the structured form handed to the printing layer. Every
// field is print-ready; the glue adds no formatting of its own.
type Ticket struct {
    Theater      string   `json:"theater"`
    Screen       string   `json:"screen"`
    Movie        string   `json:"movie"`
    Date         string   `json:"date"`      // wire form, YYYY-MM-DD
    DateLabel    string   `json:"dateLabel"` // counter form, "Wed, 06 Aug 2025"
    Show         string   `json:"show"`
    ShowTime     string   `json:"showTime"` // advertised start, may be empty
    Class        string   `json:"class"`
    Seats        []string `json:"seats"`
    SeatCount    int      `json:"seatCount"`
    PricePerSeat float64  `json:"pricePerSeat"`
    TotalPrice   float64  `json:"totalPrice"`
    BookingID    string   `json:"bookingId"`
    BookedAt     string   `json:"bookedAt"` // RFC3339 UTC
}

// Format assembles a Ticket from a booking snapshot plus the theater
// identity and showtimes in force at print time. A booking that was
// sold before a settings change prints with today's header and the
// sale's own prices, matching how the counter always worked.
func Format(b model.Booking, theater model.TheaterSettings, times model.ShowtimeSettings) Ticket {
    dateLabel := b.Date
    if d, err := time.Parse(model.DateLayout, b.Date); err == nil {
        dateLabel = d.Format("Mon, 02 Jan 2006")
    }
    screen := b.Screen
    if screen == "" {
        screen = theater.Screen
    }
    return Ticket{
        Theater:      theater.Name,
        Screen:       screen,
        Movie:        b.Movie,
        Date:         b.Date,
        DateLabel:    dateLabel,
        Show:         b.Show.String(),
        ShowTime:     times.Times[b.Show],
        Class:        b.ClassLabel,
        Seats:        append([]string(nil), b.Seats...),
        SeatCount:    len(b.Seats),
        PricePerSeat: b.PricePerSeat,
        TotalPrice:   b.TotalPrice,
        BookingID:    b.ID,
        BookedAt:     b.BookedAt.UTC().Format(time.RFC3339),
    }
}

// width is the character width of the spool layout, sized for the
// counter's 58mm thermal roll.
const width = 32

// Text renders the counter layout. The output is plain text with
// newline separators; the printing glue maps it onto the printer's
// own command set.
func (t Ticket) Text() string {
    rule := strings.Repeat("-", width)

    var b strings.Builder
    writeLine := func(s string) {
        b.WriteString(s)
        b.WriteByte('\n')
    }

    writeLine(center(strings.ToUpper(t.Theater)))
    if t.Screen != "" {
        writeLine(center(t.Screen))
    }
    writeLine(rule)
    writeLine("MOVIE : " + t.Movie)
    writeLine("DATE  : " + t.DateLabel)
    show := t.Show
    if t.ShowTime != "" {
        show += "  " + t.ShowTime
    }
    writeLine("SHOW  : " + show)
    writeLine("CLASS : " + t.Class)
    for _, line := range seatLines(t.Seats) {
        writeLine(line)
    }
    writeLine(rule)
    writeLine(fmt.Sprintf("RATE  : %.2f x %d", t.PricePerSeat, t.SeatCount))
    writeLine(fmt.Sprintf("TOTAL : %.2f", t.TotalPrice))
    writeLine(rule)
    writeLine("BOOKING " + shortID(t.BookingID))
    writeLine(center("THANK YOU, ENJOY THE SHOW"))
    return b.String()
}

// seatLines lays the seat list out under the SEATS label, wrapping
// onto aligned continuation lines when the roll is too narrow.
func seatLines(seats []string) []string {
    const label, cont = "SEATS : ", "        "
    if len(seats) == 0 {
        return []string{label + "-"}
    }
    var lines []string
    cur := label
    for i, s := range seats {
        item := s
        if i < len(seats)-1 {
            item += ", "
        }
        if len(cur)+len(item) > width && cur != label && cur != cont {
            lines = append(lines, strings.TrimRight(cur, " "))
            cur = cont
        }
        cur += item
    }
    lines = append(lines, strings.TrimRight(cur, " "))
    return lines
}

func center(s string) string {
    if len(s) >= width {
        return s
    }
    return strings.Repeat(" ", (width-len(s))/2) + s
}

// shortID trims a UUID down to the stub cashiers read back to
// customers; full identifiers stay in the structured fields.
func shortID(id string) string {
    if len(id) > 8 {
        return id[:8]
    }
    return id
}
