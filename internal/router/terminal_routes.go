package router

import (
	"github.com/labstack/echo/v4"

	"boxoffice/internal/handler"
	"boxoffice/internal/middleware"
	"boxoffice/internal/utils"
)

// RegisterTerminal registers the write endpoints a booking desk uses
// day to day.  All routes require a valid session token; both
// TERMINAL and ADMIN sessions are accepted, so an admin can sell from
// the same surface.
func RegisterTerminal(e *echo.Echo, secret string, sh *handler.SessionHandler, bk *handler.BookingHandler, se *handler.SeatHandler) {
	g := e.Group(
		"/api",
		middleware.SessionAuth(secret),
		middleware.RequireRole(utils.RoleTerminal, utils.RoleAdmin),
	)

	// Echo back the session's identity, mostly for the desk header.
	g.GET("/session", sh.Current)

	// ---- Selling ----
	g.POST("/bookings", bk.Create)
	g.PATCH("/bookings/:id/sync", bk.Sync)

	// ---- Seat selections ----
	g.POST("/seats/select", se.Select)
	g.DELETE("/seats/select", se.Release)
}
