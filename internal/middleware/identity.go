package middleware

// identity.go defines helpers shared across middleware files.  Currently it
// provides terminal identity extraction from the Echo context, used by the
// rate limiter to scope its buckets.  When no session is present, "anon"
// is returned so unauthenticated routes still get a stable bucket key.

import (
    "github.com/labstack/echo/v4"
)

// terminalID extracts the terminal identifier stored by SessionAuth.  It
// returns "anon" when no session is attached to the request.
func terminalID(c echo.Context) string {
    if v := c.Get("terminal_id"); v != nil {
        if s, ok := v.(string); ok && s != "" {
            return s
        }
    }
    return "anon"
}
