package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/failure"
	"boxoffice/internal/repository"
)

func newBmsTestHandler() *BmsHandler {
	return NewBmsHandler(repository.NewBmsRepo(nil))
}

func TestCreateBmsValidation(t *testing.T) {
	h := newBmsTestHandler()
	tests := []struct {
		name string
		body string
	}{
		{"missing date", `{"show":"EVENING","seats":["SC-A-1"]}`},
		{"bad date", `{"date":"2025.08.06","show":"EVENING","seats":["SC-A-1"]}`},
		{"bad show", `{"date":"2025-08-06","show":"DAWN","seats":["SC-A-1"]}`},
		{"empty seats", `{"date":"2025-08-06","show":"EVENING","seats":[]}`},
		{"blank seats", `{"date":"2025-08-06","show":"EVENING","seats":[" "]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := sessionContext(http.MethodPost, "/api/bms-bookings", tc.body)
			err := h.Create(asTerminal(c))
			require.Error(t, err)
			assert.Equal(t, failure.TypeValidation, failure.GetType(err))
		})
	}
}

func TestListBmsRequiresDate(t *testing.T) {
	h := newBmsTestHandler()

	c, _ := sessionContext(http.MethodGet, "/api/bms-bookings", "")
	err := h.List(asTerminal(c))
	require.Error(t, err)
	assert.Equal(t, failure.TypeValidation, failure.GetType(err))

	c, _ = sessionContext(http.MethodGet, "/api/bms-bookings?date=2025-08-06&show=TEATIME", "")
	err = h.List(asTerminal(c))
	require.Error(t, err)
	assert.Equal(t, failure.TypeValidation, failure.GetType(err))
}

func TestDeleteBmsRejectsBadID(t *testing.T) {
	h := newBmsTestHandler()
	for _, raw := range []string{"", "abc", "0", "-4"} {
		c, _ := sessionContext(http.MethodDelete, "/api/bms-bookings/"+raw, "")
		c.SetParamNames("id")
		c.SetParamValues(raw)
		err := h.Delete(asTerminal(c))
		require.Error(t, err, "id %q", raw)
		assert.Equal(t, failure.TypeValidation, failure.GetType(err))
	}
}
