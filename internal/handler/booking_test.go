package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/config"
	"boxoffice/internal/failure"
	"boxoffice/internal/repository"
)

// The repositories are bound to a nil handle: every test here exercises
// a path that fails before the first query.
func newBookingTestHandler() *BookingHandler {
	return NewBookingHandler(config.Config{},
		repository.NewBookingRepo(nil),
		repository.NewSelectionRepo(nil),
		repository.NewBmsRepo(nil),
		repository.NewSettingsRepo(nil),
	)
}

func asTerminal(c echo.Context) echo.Context {
	c.Set("terminal_id", "term-1")
	c.Set("terminal_name", "Desk 1")
	c.Set("role", "TERMINAL")
	return c
}

func TestCreateBookingRequiresSession(t *testing.T) {
	h := newBookingTestHandler()
	c, _ := sessionContext(http.MethodPost, "/api/bookings", `{}`)
	err := h.Create(c)
	require.Error(t, err)
	assert.Equal(t, failure.TypeUnauthorized, failure.GetType(err))
}

func TestCreateBookingValidation(t *testing.T) {
	h := newBookingTestHandler()
	tests := []struct {
		name string
		body string
	}{
		{"empty seats", `{"date":"2025-08-06","show":"EVENING","movie":"Interstellar","seats":[],"pricePerSeat":100}`},
		{"blank seats", `{"date":"2025-08-06","show":"EVENING","movie":"Interstellar","seats":["  "],"pricePerSeat":100}`},
		{"negative price", `{"date":"2025-08-06","show":"EVENING","movie":"Interstellar","seats":["A-1"],"pricePerSeat":-1}`},
		{"missing price", `{"date":"2025-08-06","show":"EVENING","movie":"Interstellar","seats":["A-1"]}`},
		{"bad show", `{"date":"2025-08-06","show":"MIDNIGHT","movie":"Interstellar","seats":["A-1"],"pricePerSeat":100}`},
		{"bad date", `{"date":"06-08-2025","show":"EVENING","movie":"Interstellar","seats":["A-1"],"pricePerSeat":100}`},
		{"missing movie", `{"date":"2025-08-06","show":"EVENING","seats":["A-1"],"pricePerSeat":100}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := sessionContext(http.MethodPost, "/api/bookings", tc.body)
			err := h.Create(asTerminal(c))
			require.Error(t, err)
			assert.Equal(t, failure.TypeValidation, failure.GetType(err))
			assert.Equal(t, http.StatusBadRequest, failure.GetStatus(err))
		})
	}
}

func TestListBookingsValidation(t *testing.T) {
	h := newBookingTestHandler()

	c, _ := sessionContext(http.MethodGet, "/api/bookings?date=2025/08/06", "")
	err := h.List(asTerminal(c))
	require.Error(t, err)
	assert.Equal(t, failure.TypeValidation, failure.GetType(err))

	c, _ = sessionContext(http.MethodGet, "/api/bookings?show=BRUNCH", "")
	err = h.List(asTerminal(c))
	require.Error(t, err)
	assert.Equal(t, failure.TypeValidation, failure.GetType(err))
}

func TestStatsRequiresDate(t *testing.T) {
	h := newBookingTestHandler()
	c, _ := sessionContext(http.MethodGet, "/api/bookings/stats", "")
	err := h.Stats(asTerminal(c))
	require.Error(t, err)
	assert.Equal(t, failure.TypeValidation, failure.GetType(err))
}

func TestBookingIDRequired(t *testing.T) {
	h := newBookingTestHandler()

	c, _ := sessionContext(http.MethodGet, "/api/bookings/", "")
	err := h.Get(asTerminal(c))
	require.Error(t, err)
	assert.Equal(t, failure.TypeValidation, failure.GetType(err))

	c, _ = sessionContext(http.MethodPatch, "/api/bookings//sync", "")
	err = h.Sync(asTerminal(c))
	require.Error(t, err)
	assert.Equal(t, failure.TypeValidation, failure.GetType(err))

	c, _ = sessionContext(http.MethodDelete, "/api/bookings/", "")
	err = h.Delete(asTerminal(c))
	require.Error(t, err)
	assert.Equal(t, failure.TypeValidation, failure.GetType(err))
}
