package middleware // middleware contains reusable HTTP middleware functions

import (
    "strings" // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware

    "boxoffice/internal/failure"
)

// SessionAuth returns an Echo middleware that validates a Bearer session
// token and injects the terminal's identity into the request context.  The
// provided secret must match the one used when issuing tokens.  Handlers
// behind this middleware can read `c.Get("terminal_id")`,
// `c.Get("terminal_name")` and `c.Get("role")` as strings.
func SessionAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return failure.Unauthorized("missing bearer token")
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse with the HS256 secret.  The callback also pins the
            // signing method so a token signed with a different
            // algorithm is rejected.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return failure.Unauthorized("invalid or expired session token")
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return failure.Unauthorized("invalid session claims")
            }

            c.Set("terminal_id", asString(claims["sub"]))
            c.Set("terminal_name", asString(claims["name"]))
            c.Set("role", asString(claims["role"]))
            return next(c)
        }
    }
}

func asString(v interface{}) string {
    s, _ := v.(string)
    return s
}
