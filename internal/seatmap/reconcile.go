package seatmap

import (
    "sort"

    "boxoffice/internal/model"
)

// SeatMap is one terminal's local view of a slot. The terminal
// selects seats into its cart between polls; Reconcile folds each
// server report into the view without wiping that cart. There is no
// cross-terminal ordering guarantee, just last writer wins at the
// server and a one-way merge here.
type SeatMap struct {
    date          string
    show          model.Show
    statuses      map[string]model.SeatStatus
    localSelected map[string]bool
}

// New builds an empty view for a slot; every seat reads AVAILABLE
// until the first report lands.
func New(date string, show model.Show) *SeatMap {
    return &SeatMap{
        date:          date,
        show:          show,
        statuses:      make(map[string]model.SeatStatus),
        localSelected: make(map[string]bool),
    }
}

// Status reports the seat's current state, AVAILABLE for seats the
// view knows nothing about.
func (m *SeatMap) Status(seatID string) model.SeatStatus {
    if st, ok := m.statuses[seatID]; ok && st != "" {
        return st
    }
    return model.SeatAvailable
}

// Select puts a seat into the local cart. It refuses seats that are
// sold, blocked or selected by another terminal and reports whether
// the seat ended up selected.
func (m *SeatMap) Select(seatID string) bool {
    switch m.Status(seatID) {
    case model.SeatBooked, model.SeatBmsBooked, model.SeatBlocked:
        return false
    case model.SeatSelected:
        return m.localSelected[seatID]
    }
    m.localSelected[seatID] = true
    m.statuses[seatID] = model.SeatSelected
    return true
}

// Deselect drops a seat from the local cart. Foreign selections are
// left alone.
func (m *SeatMap) Deselect(seatID string) {
    if !m.localSelected[seatID] {
        return
    }
    delete(m.localSelected, seatID)
    if m.statuses[seatID] == model.SeatSelected {
        m.statuses[seatID] = model.SeatAvailable
    }
}

// Selected returns the local cart in sorted order.
func (m *SeatMap) Selected() []string {
    out := make([]string, 0, len(m.localSelected))
    for id := range m.localSelected {
        out = append(out, id)
    }
    sort.Strings(out)
    return out
}

// Reconcile merges a server report into the view. Server-recorded
// sales and blocks always win, and a cart seat lost to one of them
// is dropped. A cart seat the server calls AVAILABLE or SELECTED
// stays in the cart: the hold may simply have expired server-side,
// or the SELECTED echo may be this terminal's own hold, and either
// way the cashier has not abandoned it.
func (m *SeatMap) Reconcile(r Report) {
    next := make(map[string]model.SeatStatus, len(r.Statuses))
    for id, st := range r.Statuses {
        next[id] = st
    }
    for id := range m.localSelected {
        switch next[id] {
        case model.SeatBooked, model.SeatBmsBooked, model.SeatBlocked:
            delete(m.localSelected, id)
        default:
            next[id] = model.SeatSelected
        }
    }
    m.statuses = next
}
