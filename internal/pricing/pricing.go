// Package pricing resolves seat rows to seating classes and prices.
// The class comes from a fixed row-prefix table; the price comes from
// the owner's pricing settings. Rows no rule matches resolve to
// UNKNOWN at price zero, which is an answer, not an error.
package pricing

import (
    "strings"

    "boxoffice/internal/model"
)

// rule maps a row-label prefix to its seating class.
type rule struct {
    prefix string
    class  string
}

// rules are checked in order and the first matching prefix wins.
var rules = []rule{
    {"BOX-", model.ClassBox},
    {"SC-", model.ClassStarClass},
    {"CB-", model.ClassClassicBalcony},
    {"FC-", model.ClassFirstClass},
    {"SEC-", model.ClassSecondClass},
}

// ClassForRow maps a row label to its seating class. The ledger
// accepts seats the resolver has no rule for, so unknown rows yield
// ClassUnknown rather than failing.
func ClassForRow(row string) string {
    for _, r := range rules {
        if strings.HasPrefix(row, r.prefix) {
            return r.class
        }
    }
    return model.ClassUnknown
}

// Resolver prices seats against one pricing table. Build with New;
// handlers construct a fresh one per request from the stored
// settings so edits take effect immediately.
type Resolver struct {
    prices map[string]float64
}

// New builds a Resolver over the given pricing settings. Classes
// missing from the table price at zero.
func New(ps model.PricingSettings) *Resolver {
    prices := make(map[string]float64, len(ps.Prices))
    for class, amount := range ps.Prices {
        prices[class] = amount
    }
    return &Resolver{prices: prices}
}

// PriceForClass returns the configured price of a seating class,
// zero when the class is unknown or unpriced.
func (r *Resolver) PriceForClass(class string) float64 {
    return r.prices[class]
}

// PriceForRow resolves a row label to its class and price. UNKNOWN
// always prices at zero regardless of the table contents.
func (r *Resolver) PriceForRow(row string) (class string, price float64) {
    class = ClassForRow(row)
    if class == model.ClassUnknown {
        return class, 0
    }
    return class, r.prices[class]
}

// PriceForSeat prices a full seat identifier by its row component.
func (r *Resolver) PriceForSeat(seatID string) (class string, price float64) {
    return r.PriceForRow(model.RowOfSeat(seatID))
}
