package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"boxoffice/internal/failure"
	"boxoffice/internal/repository"
	"boxoffice/internal/ticket"
)

// TicketHandler renders print-ready tickets for existing bookings, the
// on-demand counterpart to the spool consumer.  Desks use it to reprint
// a lost ticket without going near the broker.
type TicketHandler struct {
	Bookings *repository.BookingRepo
	Settings *repository.SettingsRepo
}

func NewTicketHandler(bookings *repository.BookingRepo, settings *repository.SettingsRepo) *TicketHandler {
	if bookings == nil || settings == nil {
		panic("nil repository passed to NewTicketHandler")
	}
	return &TicketHandler{Bookings: bookings, Settings: settings}
}

// Get handles GET /api/tickets/:id.  It returns the structured ticket
// for the booking; with ?format=text it responds with the fixed-width
// counter layout instead.
func (h *TicketHandler) Get(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return failure.Validation("booking id is required")
	}
	ctx := c.Request().Context()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return failure.FromDB(err)
	}
	theater, err := h.Settings.Theater(ctx)
	if err != nil {
		return failure.FromDB(err)
	}
	times, err := h.Settings.Showtimes(ctx)
	if err != nil {
		return failure.FromDB(err)
	}

	tk := ticket.Format(*b, theater, times)
	if c.QueryParam("format") == "text" {
		return c.String(http.StatusOK, tk.Text())
	}
	return c.JSON(http.StatusOK, tk)
}
