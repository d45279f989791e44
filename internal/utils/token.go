package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"  // secure random number generation for session ids
	"encoding/hex" // hex encoding of random bytes
	"errors"       // sentinel error for invalid cookies
	"time"         // issued-at stamp on session tokens

	"github.com/golang-jwt/jwt/v5" // JWT library for signing session cookies
)

// ErrInvalidToken is returned when a session cookie fails signature
// verification or carries no session id.
var ErrInvalidToken = errors.New("invalid session token")

// NewSessionToken wraps a session id in a signed HS256 JWT. The cookie
// value itself carries no expiry; the inactivity window is enforced
// server-side by the session store, so the token only has to prove the id
// was issued by this server and not forged.
func NewSessionToken(secret, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseSessionToken verifies a session cookie and extracts the session id.
// Tokens signed with a different method or secret are rejected.
func ParseSessionToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidToken
	}
	return sid, nil
}

// RandomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data. It is used to produce session ids.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
