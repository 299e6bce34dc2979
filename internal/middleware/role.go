package middleware // middleware provides shared request processing for handlers

import (
    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "boxoffice/internal/failure"
)

// RequireRole returns a middleware that enforces that the session carries
// one of the specified roles.  The roles should correspond to the values
// stored in the token's "role" claim.  It assumes SessionAuth has already
// extracted the role into the context under the key "role"; requests with
// a missing or disallowed role are rejected with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get("role").(string)
            if !ok || !allowed[role] {
                return failure.Forbidden("insufficient role for this operation")
            }
            return next(c)
        }
    }
}
