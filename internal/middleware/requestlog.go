package middleware

import (
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/rs/zerolog/log"
)

// RequestLog emits one structured log line per request.  The error,
// if any, is forwarded to the central error handler first so the
// logged status is the one that actually went out on the wire.
func RequestLog() echo.MiddlewareFunc {
    return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogStatus:    true,
        LogMethod:    true,
        LogURI:       true,
        LogLatency:   true,
        LogRemoteIP:  true,
        LogRequestID: true,
        LogError:     true,
        HandleError:  true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            ev := log.Info()
            if v.Status >= 500 {
                ev = log.Error()
            } else if v.Status >= 400 {
                ev = log.Warn()
            }
            if v.Error != nil {
                ev = ev.Err(v.Error)
            }
            ev.Str("method", v.Method).
                Str("uri", v.URI).
                Int("status", v.Status).
                Dur("latency", v.Latency).
                Str("ip", v.RemoteIP).
                Str("request_id", v.RequestID).
                Msg("request")
            return nil
        },
    })
}
