package utils // package utils provides helpers for session tokens and key hashing

import (
    "time" // time utilities for computing expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Terminal roles carried in the session token's "role" claim.
const (
    RoleTerminal = "TERMINAL" // regular booking desk
    RoleAdmin    = "ADMIN"    // owner/settings access
)

// SessionToken represents a signed JWT session token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Terminals send the token in the Authorization
// header on every protected call; there is no refresh flow, a desk simply
// opens a new session when the old one lapses.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a desk terminal.  It
// takes the signing secret, the terminal ID, the terminal's display name,
// the role and a TTL in minutes.  The JWT includes the subject (sub),
// name, role, expiration (exp) and issued at (iat) claims.
func NewSessionToken(secret, terminalID, name, role string, ttlMin int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":  terminalID,
        "name": name,
        "role": role,
        "exp":  exp.Unix(),
        "iat":  time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}
