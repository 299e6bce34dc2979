package model

// PricingSettings holds the per-class seat prices.  The owner edits
// them through the settings endpoints; absent overrides fall back to
// DefaultPricing.
type PricingSettings struct {
    Prices map[string]float64 `json:"prices"`
}

// ShowtimeSettings maps each screening slot to its advertised start
// time.  The times are display strings for tickets and the seat
// map header, not schedule data the server acts on.
type ShowtimeSettings struct {
    Times map[Show]string `json:"times"`
}

// TheaterSettings carries the identity lines printed on tickets.
type TheaterSettings struct {
    Name   string `json:"name"`
    Screen string `json:"screen"`
}

// DefaultPricing returns the built-in per-class prices used until
// the owner stores overrides.
func DefaultPricing() PricingSettings {
    return PricingSettings{Prices: map[string]float64{
        ClassBox:            300,
        ClassStarClass:      150,
        ClassClassicBalcony: 120,
        ClassFirstClass:     100,
        ClassSecondClass:    80,
    }}
}

// DefaultShowtimes returns the built-in slot start times.
func DefaultShowtimes() ShowtimeSettings {
    return ShowtimeSettings{Times: map[Show]string{
        ShowMorning: "11:30 AM",
        ShowMatinee: "02:30 PM",
        ShowEvening: "06:30 PM",
        ShowNight:   "09:45 PM",
    }}
}

// DefaultTheater returns the built-in ticket header lines.
func DefaultTheater() TheaterSettings {
    return TheaterSettings{Name: "City Cinema", Screen: "Screen 1"}
}
