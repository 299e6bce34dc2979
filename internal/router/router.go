package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"boxoffice/internal/handler" // handlers implement the endpoint logic
)

// RegisterPublic registers the routes that work without a session:
// health, opening a session, and every read.  The desks polled seat
// status long before sessions existed, so reads stay open; sessions
// gate the writes.  statsCache is the Redis read-through for the
// stats route and may be a pass-through when caching is disabled.
func RegisterPublic(e *echo.Echo, hh *handler.HealthHandler, sh *handler.SessionHandler, se *handler.SeatHandler, bk *handler.BookingHandler, bms *handler.BmsHandler, st *handler.SettingsHandler, tk *handler.TicketHandler, statsCache echo.MiddlewareFunc) {
	// Load balancers and the desk launcher poll this to verify the
	// service is up before binding a terminal.
	e.GET("/api/health", hh.Health)
	// Issue a terminal or admin session token.
	e.POST("/api/session", sh.Open)

	// ---- Seat map ----
	e.GET("/api/seats/status", se.Status)
	e.GET("/api/seats/layout", se.Layout)

	// ---- Bookings ----
	e.GET("/api/bookings", bk.List)
	// Static "stats" is matched before the :id wildcard, so the order
	// here does not matter; the cache middleware applies to stats only.
	e.GET("/api/bookings/stats", bk.Stats, statsCache)
	e.GET("/api/bookings/:id", bk.Get)
	e.GET("/api/bms-bookings", bms.List)

	// ---- Settings and tickets ----
	e.GET("/api/settings", st.Get)
	e.GET("/api/settings/pricing", st.GetPricing)
	e.GET("/api/settings/showtimes", st.GetShowtimes)
	e.GET("/api/settings/theater", st.GetTheater)
	e.GET("/api/tickets/:id", tk.Get)
}
