package models

import "time"

// Session is the server-side state behind a session cookie. It is treated as
// an immutable value: validation produces a refreshed copy rather than
// mutating the stored one.
type Session struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"userId"`
	Username    string    `json:"username"`
	Fingerprint string    `json:"fingerprint"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Expired reports whether the session's rolling expiry has passed.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
