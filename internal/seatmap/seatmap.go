// Package seatmap derives per-slot seat status maps and keeps a
// terminal's local view consistent with the server's answers.
package seatmap

import (
    "sort"

    "boxoffice/internal/model"
)

// Report is the server's full answer for one (date, show) slot. The
// three channel slices stay faithful to their tables, so a seat sold
// through both channels shows up in Booked and BmsBooked at once;
// Statuses holds the merged verdict per seat.
type Report struct {
    Date      string
    Show      model.Show
    Booked    []string
    BmsBooked []string
    Selected  []string
    Blocked   []string
    Statuses  map[string]model.SeatStatus
}

// Compose derives the status of every seat of the slot. The walk
// starts from the inventory (AVAILABLE, or BLOCKED for inactive
// seats) and overlays selections, BMS sales and ledger sales in
// rising precedence, so a seat sold through both channels reads
// BOOKED. Seats referenced by a sale but missing from the inventory
// are kept: the ledger never validated seat identifiers, and hiding
// such sales would understate the house.
func Compose(date string, show model.Show, layout []model.Seat, booked, bms, selected []string) Report {
    statuses := make(map[string]model.SeatStatus, len(layout))
    for _, s := range layout {
        if s.IsActive {
            statuses[s.SeatID] = model.SeatAvailable
        } else {
            statuses[s.SeatID] = model.SeatBlocked
        }
    }
    for _, id := range selected {
        // An advisory hold never outranks a physically blocked seat.
        if st, ok := statuses[id]; ok && st == model.SeatBlocked {
            continue
        }
        statuses[id] = model.SeatSelected
    }
    for _, id := range bms {
        statuses[id] = model.SeatBmsBooked
    }
    for _, id := range booked {
        statuses[id] = model.SeatBooked
    }

    var blocked []string
    for id, st := range statuses {
        if st == model.SeatBlocked {
            blocked = append(blocked, id)
        }
    }
    return Report{
        Date:      date,
        Show:      show,
        Booked:    sortedCopy(booked),
        BmsBooked: sortedCopy(bms),
        Selected:  sortedCopy(selected),
        Blocked:   sortedCopy(blocked),
        Statuses:  statuses,
    }
}

func sortedCopy(in []string) []string {
    out := make([]string, len(in))
    copy(out, in)
    sort.Strings(out)
    return out
}
