package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/config"
	"boxoffice/internal/failure"
	"boxoffice/internal/repository"
)

func newSeatTestHandler() *SeatHandler {
	return NewSeatHandler(config.Config{},
		repository.NewSeatRepo(nil),
		repository.NewBookingRepo(nil),
		repository.NewBmsRepo(nil),
		repository.NewSelectionRepo(nil),
	)
}

func TestSeatStatusSlotValidation(t *testing.T) {
	h := newSeatTestHandler()
	tests := []struct {
		name   string
		target string
	}{
		{"missing date", "/api/seats/status?show=EVENING"},
		{"bad date", "/api/seats/status?date=06-08-2025&show=EVENING"},
		{"missing show", "/api/seats/status?date=2025-08-06"},
		{"bad show", "/api/seats/status?date=2025-08-06&show=MIDNIGHT"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := sessionContext(http.MethodGet, tc.target, "")
			err := h.Status(c)
			require.Error(t, err)
			assert.Equal(t, failure.TypeValidation, failure.GetType(err))
			assert.Equal(t, http.StatusBadRequest, failure.GetStatus(err))
		})
	}
}

func TestSelectSeatsRequiresSession(t *testing.T) {
	h := newSeatTestHandler()
	c, _ := sessionContext(http.MethodPost, "/api/seats/select", `{"date":"2025-08-06","show":"EVENING","seats":["SC-A-1"]}`)
	err := h.Select(c)
	require.Error(t, err)
	assert.Equal(t, failure.TypeUnauthorized, failure.GetType(err))
}

func TestSelectSeatsValidation(t *testing.T) {
	h := newSeatTestHandler()
	tests := []struct {
		name string
		body string
	}{
		{"empty seats", `{"date":"2025-08-06","show":"EVENING","seats":[]}`},
		{"blank seats", `{"date":"2025-08-06","show":"EVENING","seats":["  "]}`},
		{"bad show", `{"date":"2025-08-06","show":"BRUNCH","seats":["SC-A-1"]}`},
		{"bad date", `{"date":"2025/08/06","show":"EVENING","seats":["SC-A-1"]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := sessionContext(http.MethodPost, "/api/seats/select", tc.body)
			err := h.Select(asTerminal(c))
			require.Error(t, err)
			assert.Equal(t, failure.TypeValidation, failure.GetType(err))
		})
	}
}

func TestReleaseSelectionSlotValidation(t *testing.T) {
	h := newSeatTestHandler()

	c, _ := sessionContext(http.MethodDelete, "/api/seats/select", "")
	err := h.Release(c)
	require.Error(t, err)
	assert.Equal(t, failure.TypeUnauthorized, failure.GetType(err))

	c, _ = sessionContext(http.MethodDelete, "/api/seats/select?date=2025-08-06&show=LUNCH", "")
	err = h.Release(asTerminal(c))
	require.Error(t, err)
	assert.Equal(t, failure.TypeValidation, failure.GetType(err))
}

func TestBlockSeatRequiresID(t *testing.T) {
	h := newSeatTestHandler()

	c, _ := sessionContext(http.MethodPost, "/api/seats//block", "")
	c.SetParamNames("id")
	c.SetParamValues("  ")
	err := h.Block(asTerminal(c))
	require.Error(t, err)
	assert.Equal(t, failure.TypeValidation, failure.GetType(err))
}
