package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewSessionTokenClaims(t *testing.T) {
    tok, err := NewSessionToken("test-secret", "2f1c9a40-0000-0000-0000-000000000001", "Desk 1", RoleTerminal, 720)
    require.NoError(t, err)
    require.NotEmpty(t, tok.Token)

    parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("test-secret"), nil
    })
    require.NoError(t, err)
    require.True(t, parsed.Valid)

    claims, ok := parsed.Claims.(jwt.MapClaims)
    require.True(t, ok)
    assert.Equal(t, "2f1c9a40-0000-0000-0000-000000000001", claims["sub"])
    assert.Equal(t, "Desk 1", claims["name"])
    assert.Equal(t, RoleTerminal, claims["role"])

    exp, ok := claims["exp"].(float64)
    require.True(t, ok)
    assert.InDelta(t, time.Now().UTC().Add(720*time.Minute).Unix(), int64(exp), 5)
    assert.WithinDuration(t, time.Now().UTC().Add(720*time.Minute), tok.Exp, 5*time.Second)
}

func TestNewSessionTokenRejectsWrongSecret(t *testing.T) {
    tok, err := NewSessionToken("right-secret", "desk", "Desk", RoleAdmin, 10)
    require.NoError(t, err)

    _, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("wrong-secret"), nil
    })
    assert.Error(t, err)
}
