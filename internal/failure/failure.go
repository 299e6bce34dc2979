// Package failure carries the error taxonomy every HTTP response
// draws from. Handlers and repositories return *Failure values (or
// wrap driver errors through FromDB) and the central error handler
// renders them into the wire envelope. The taxonomy is closed;
// anything unrecognized degrades to DATABASE_ERROR with status 500.
package failure

import (
    "database/sql"
    "errors"
    "fmt"
    "net/http"

    "github.com/go-sql-driver/mysql"
)

// Error taxonomy as it appears in the "type" field of the envelope.
const (
    TypeValidation   = "VALIDATION_ERROR"
    TypeNotFound     = "NOT_FOUND"
    TypeUnauthorized = "UNAUTHORIZED"
    TypeForbidden    = "FORBIDDEN"
    TypeConflict     = "CONFLICT"
    TypeDatabase     = "DATABASE_ERROR"
    TypeRateLimited  = "RATE_LIMITED"
)

// Failure is a classified error. Status doubles as the HTTP status
// code and the numeric "code" field of the envelope.
type Failure struct {
    Type    string
    Message string
    Status  int
    cause   error
}

// Error implements the error interface.
func (f *Failure) Error() string {
    return f.Message
}

// Unwrap exposes the underlying cause, if any, so the central
// handler can log driver detail that never reaches the wire.
func (f *Failure) Unwrap() error {
    return f.cause
}

// Validation reports a request the caller can fix.
func Validation(message string) *Failure {
    return &Failure{Type: TypeValidation, Message: message, Status: http.StatusBadRequest}
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) *Failure {
    return Validation(fmt.Sprintf(format, args...))
}

// NotFound reports a missing record or route.
func NotFound(message string) *Failure {
    return &Failure{Type: TypeNotFound, Message: message, Status: http.StatusNotFound}
}

// Unauthorized reports a missing or invalid session.
func Unauthorized(message string) *Failure {
    return &Failure{Type: TypeUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

// Forbidden reports a valid session lacking the required role.
func Forbidden(message string) *Failure {
    return &Failure{Type: TypeForbidden, Message: message, Status: http.StatusForbidden}
}

// Conflict reports state that contradicts the request, such as a
// seat already taken for the slot.
func Conflict(message string) *Failure {
    return &Failure{Type: TypeConflict, Message: message, Status: http.StatusConflict}
}

// Conflictf is Conflict with formatting.
func Conflictf(format string, args ...any) *Failure {
    return Conflict(fmt.Sprintf(format, args...))
}

// RateLimited reports a request rejected by the limiter.
func RateLimited(message string) *Failure {
    return &Failure{Type: TypeRateLimited, Message: message, Status: http.StatusTooManyRequests}
}

// Database wraps an unclassifiable storage error. The driver detail
// stays out of the wire message and is kept as the cause for logs.
func Database(err error) *Failure {
    return &Failure{Type: TypeDatabase, Message: "unexpected database error", Status: http.StatusInternalServerError, cause: err}
}

// FromDB classifies a database error: missing rows become NOT_FOUND,
// MySQL duplicate-key violations (error 1062) become CONFLICT and
// everything else becomes DATABASE_ERROR. Already classified
// failures pass through untouched.
func FromDB(err error) *Failure {
    var f *Failure
    if errors.As(err, &f) {
        return f
    }
    if errors.Is(err, sql.ErrNoRows) {
        return NotFound("record not found")
    }
    var me *mysql.MySQLError
    if errors.As(err, &me) && me.Number == 1062 {
        return Conflict("duplicate record for this slot")
    }
    return Database(err)
}

// GetStatus extracts the HTTP status of a classified error, falling
// back to 500 for anything else.
func GetStatus(err error) int {
    var f *Failure
    if errors.As(err, &f) {
        return f.Status
    }
    return http.StatusInternalServerError
}

// GetType extracts the taxonomy type of a classified error, falling
// back to TypeDatabase for anything else.
func GetType(err error) string {
    var f *Failure
    if errors.As(err, &f) {
        return f.Type
    }
    return TypeDatabase
}
