package model

// Show identifies one of the four fixed daily screening slots the
// theater operates.  The slot set is closed: every booking, BMS
// record and seat selection is keyed by a (date, show) pair drawn
// from this enumeration, and no other value ever enters the system.
type Show string

// Screening slots in daily running order.
const (
    ShowMorning Show = "MORNING"
    ShowMatinee Show = "MATINEE"
    ShowEvening Show = "EVENING"
    ShowNight   Show = "NIGHT"
)

// AllShows lists the slots in daily running order.  Per-show
// breakdowns iterate this slice so their output order is stable.
var AllShows = []Show{ShowMorning, ShowMatinee, ShowEvening, ShowNight}

// ParseShow checks a raw string against the slot enumeration.
// Matching is exact and case sensitive; anything else is rejected
// rather than coerced.
func ParseShow(s string) (Show, bool) {
    switch Show(s) {
    case ShowMorning, ShowMatinee, ShowEvening, ShowNight:
        return Show(s), true
    }
    return "", false
}

// Valid reports whether s is one of the four screening slots.
func (s Show) Valid() bool {
    _, ok := ParseShow(string(s))
    return ok
}

// String returns the wire form of the slot.
func (s Show) String() string { return string(s) }
