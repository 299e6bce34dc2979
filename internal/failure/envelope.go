package failure

import (
    "errors"
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog/log"
)

// Envelope is the wire form of every error response.
type Envelope struct {
    Type      string `json:"type"`
    Message   string `json:"message"`
    Code      int    `json:"code"`
    Timestamp string `json:"timestamp"`
    RequestID string `json:"requestId"`
}

// EchoHandler renders any error escaping a handler into the envelope.
// It is installed as the echo instance's HTTPErrorHandler, so echo's
// own errors (unknown route, bind failures, middleware rejections)
// land in the same closed taxonomy as classified failures.
func EchoHandler(err error, c echo.Context) {
    if c.Response().Committed {
        return
    }
    f := classify(err)
    rid := c.Response().Header().Get(echo.HeaderXRequestID)
    if f.Status >= http.StatusInternalServerError {
        log.Error().Err(err).Str("request_id", rid).Str("path", c.Request().URL.Path).Msg("request failed")
    }
    env := Envelope{
        Type:      f.Type,
        Message:   f.Message,
        Code:      f.Status,
        Timestamp: time.Now().UTC().Format(time.RFC3339),
        RequestID: rid,
    }
    if werr := c.JSON(f.Status, env); werr != nil {
        log.Error().Err(werr).Str("request_id", rid).Msg("write error response")
    }
}

// classify folds echo's own error type into the taxonomy. Unmatched
// routes and methods both read as NOT_FOUND; anything unrecognized
// is a DATABASE_ERROR, matching the service's catch-all behavior.
func classify(err error) *Failure {
    var f *Failure
    if errors.As(err, &f) {
        return f
    }
    var he *echo.HTTPError
    if errors.As(err, &he) {
        msg := fmt.Sprint(he.Message)
        switch he.Code {
        case http.StatusNotFound, http.StatusMethodNotAllowed:
            return NotFound("route not found")
        case http.StatusBadRequest:
            return Validation(msg)
        case http.StatusUnauthorized:
            return Unauthorized(msg)
        case http.StatusForbidden:
            return Forbidden(msg)
        case http.StatusTooManyRequests:
            return RateLimited(msg)
        }
    }
    return Database(err)
}
