package failure

import (
    "database/sql"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/go-sql-driver/mysql"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestFromDB(t *testing.T) {
    tests := []struct {
        name       string
        err        error
        wantType   string
        wantStatus int
    }{
        {"no rows", sql.ErrNoRows, TypeNotFound, http.StatusNotFound},
        {"wrapped no rows", fmt.Errorf("lookup: %w", sql.ErrNoRows), TypeNotFound, http.StatusNotFound},
        {"duplicate key", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, TypeConflict, http.StatusConflict},
        {"other mysql error", &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout"}, TypeDatabase, http.StatusInternalServerError},
        {"plain error", errors.New("boom"), TypeDatabase, http.StatusInternalServerError},
        {"already classified", Validation("bad input"), TypeValidation, http.StatusBadRequest},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            f := FromDB(tc.err)
            assert.Equal(t, tc.wantType, f.Type)
            assert.Equal(t, tc.wantStatus, f.Status)
        })
    }
}

func TestGetStatusAndType(t *testing.T) {
    assert.Equal(t, http.StatusConflict, GetStatus(Conflict("seat taken")))
    assert.Equal(t, TypeConflict, GetType(Conflict("seat taken")))
    assert.Equal(t, http.StatusInternalServerError, GetStatus(errors.New("boom")))
    assert.Equal(t, TypeDatabase, GetType(errors.New("boom")))
}

func TestDatabaseKeepsCause(t *testing.T) {
    cause := errors.New("driver: bad connection")
    f := Database(cause)
    assert.ErrorIs(t, f, cause)
    assert.Equal(t, "unexpected database error", f.Message)
}

func TestEchoHandlerEnvelope(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Response().Header().Set(echo.HeaderXRequestID, "req-123")

    EchoHandler(Validation("seats must not be empty"), c)

    require.Equal(t, http.StatusBadRequest, rec.Code)
    var env Envelope
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
    assert.Equal(t, TypeValidation, env.Type)
    assert.Equal(t, "seats must not be empty", env.Message)
    assert.Equal(t, http.StatusBadRequest, env.Code)
    assert.Equal(t, "req-123", env.RequestID)
    assert.NotEmpty(t, env.Timestamp)
}

func TestEchoHandlerUnknownRoute(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    EchoHandler(echo.NewHTTPError(http.StatusNotFound, "Not Found"), c)

    require.Equal(t, http.StatusNotFound, rec.Code)
    var env Envelope
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
    assert.Equal(t, TypeNotFound, env.Type)
    assert.Equal(t, "route not found", env.Message)
}

func TestEchoHandlerUnclassified(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    EchoHandler(errors.New("storage exploded"), c)

    require.Equal(t, http.StatusInternalServerError, rec.Code)
    var env Envelope
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
    assert.Equal(t, TypeDatabase, env.Type)
    assert.Equal(t, http.StatusInternalServerError, env.Code)
}
