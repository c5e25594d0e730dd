package models

import "time"

// Session is the server-side record an opaque session cookie points at. It
// lives only in the session store and is deleted on logout or TTL expiry.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
