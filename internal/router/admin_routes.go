package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"boxoffice/internal/handler"    // admin handlers
	"boxoffice/internal/middleware" // session + role middlewares
	"boxoffice/internal/utils"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /api.
// All routes require a valid session token and the ADMIN role.
func RegisterAdmin(e *echo.Echo, secret string, se *handler.SeatHandler, bk *handler.BookingHandler, bms *handler.BmsHandler, st *handler.SettingsHandler) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/api",
		middleware.SessionAuth(secret),
		middleware.RequireRole(utils.RoleAdmin),
	)

	// ---- Seats ----
	g.POST("/seats/:id/block", se.Block)
	g.POST("/seats/:id/unblock", se.Unblock)

	// ---- Corrections ----
    // Keying in aggregator sales and deleting records are owner
    // actions; the desks themselves only ever sell.
    g.POST("/bms-bookings", bms.Create)
    g.DELETE("/bms-bookings/:id", bms.Delete)
    g.DELETE("/bookings/:id", bk.Delete)

	// ---- Settings ----
    g.PUT("/settings/pricing", st.PutPricing)
    g.PUT("/settings/showtimes", st.PutShowtimes)
    g.PUT("/settings/theater", st.PutTheater)
}
