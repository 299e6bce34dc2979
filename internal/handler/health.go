package handler // declare the package name; contains HTTP handlers

import (
    "context"
    "database/sql"
    "net/http"
    "time"

    "github.com/labstack/echo/v4" // echo is the web framework used for this project

    "boxoffice/internal/config"
)

// HealthHandler reports whether the service and its dependencies are
// answering.  The endpoint always returns 200 so a desk can tell the
// difference between "server down" (no response) and "server up but
// degraded" (status field).
type HealthHandler struct {
    DB  *sql.DB
    Cfg config.Config
}

func NewHealthHandler(db *sql.DB, cfg config.Config) *HealthHandler {
    return &HealthHandler{DB: db, Cfg: cfg}
}

// Health handles GET /api/health.  It pings the database with a short
// timeout and reports the spool queue as configured or disabled; the
// broker itself is not dialed here, the consumer's reconnect loop
// already tracks that.
func (h *HealthHandler) Health(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
    defer cancel()

    status := "ok"
    db := "up"
    if err := h.DB.PingContext(ctx); err != nil {
        status = "degraded"
        db = "down"
    }
    queue := "disabled"
    if h.Cfg.AMQPURL != "" {
        queue = "configured"
    }
    return c.JSON(http.StatusOK, echo.Map{
        "status": status,
        "db":     db,
        "queue":  queue,
        "time":   time.Now().UTC().Format(time.RFC3339),
    })
}
