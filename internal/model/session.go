package model

import "time"

// Session is the per-browser authenticated state. It lives only in the
// session store (Redis or the in-memory fallback) and is destroyed on
// logout or after the inactivity window elapses. The cookie carries the ID
// inside a signed JWT; LastSeen drives the sliding expiry.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	LoginTime time.Time `json:"login_time"`
	LastSeen  time.Time `json:"last_seen"`
}
