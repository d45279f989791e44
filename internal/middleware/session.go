package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jpkrishna28/mls-point-locator/internal/session"
	"github.com/jpkrishna28/mls-point-locator/internal/utils"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "mls_session"

// SessionAuth returns an Echo middleware that gates every protected route
// behind a live session. The request must present the session cookie (or
// an equivalent Bearer token); the cookie's signature is verified with the
// configured secret, the wrapped session id is looked up in the store, and
// sessions idle past the inactivity window are rejected. On success the
// session's activity stamp is refreshed and the username is injected into
// the request context under "username" for handlers to read.
//
// A rejected request always gets a 401 with the standard failure envelope;
// data is never served to an unauthenticated caller.
func SessionAuth(secret string, sessions session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return unauthenticated(c)
			}
			sid, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return unauthenticated(c)
			}
			sess, err := sessions.Get(c.Request().Context(), sid)
			if err != nil {
				return unauthenticated(c)
			}
			// Sliding window: every authorized request pushes expiry forward.
			_ = sessions.Touch(c.Request().Context(), sid)

			c.Set("username", sess.Username)
			c.Set("session_id", sess.ID)
			return next(c)
		}
	}
}

// tokenFromRequest reads the signed session token from the cookie, falling
// back to an Authorization bearer header for non-browser clients.
func tokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthenticated"})
}
