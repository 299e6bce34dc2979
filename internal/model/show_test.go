package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestParseShow(t *testing.T) {
    tests := []struct {
        in    string
        want  Show
        valid bool
    }{
        {"MORNING", ShowMorning, true},
        {"MATINEE", ShowMatinee, true},
        {"EVENING", ShowEvening, true},
        {"NIGHT", ShowNight, true},
        {"evening", "", false},
        {"MIDNIGHT", "", false},
        {"", "", false},
    }
    for _, tc := range tests {
        got, ok := ParseShow(tc.in)
        assert.Equal(t, tc.valid, ok, "ParseShow(%q)", tc.in)
        assert.Equal(t, tc.want, got, "ParseShow(%q)", tc.in)
    }
}

func TestShowValid(t *testing.T) {
    for _, s := range AllShows {
        assert.True(t, s.Valid(), "%s should be valid", s)
    }
    assert.False(t, Show("LATE").Valid())
}
