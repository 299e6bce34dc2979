package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestSplitSeatID(t *testing.T) {
    tests := []struct {
        seatID string
        row    string
        number string
    }{
        {"A-1", "A", "1"},
        {"BOX-A-3", "BOX-A", "3"},
        {"SC-A-12", "SC-A", "12"},
        {"SEC-C-24", "SEC-C", "24"},
        {"Z", "Z", ""},
        {"", "", ""},
    }
    for _, tc := range tests {
        row, number := SplitSeatID(tc.seatID)
        assert.Equal(t, tc.row, row, "row of %q", tc.seatID)
        assert.Equal(t, tc.number, number, "number of %q", tc.seatID)
    }
}

func TestRowOfSeat(t *testing.T) {
    assert.Equal(t, "CB-B", RowOfSeat("CB-B-7"))
    assert.Equal(t, "A", RowOfSeat("A-14"))
}
