package models

import "time"

// Session is the persisted admin session row.
//
// The cookie carries an opaque random token; only its SHA-256 hash is stored.
// Exactly one admin identity exists, so a session row is either fully trusted
// or absent; there is no role or user reference.
type Session struct {
	// ID is the session identifier, regenerated on every login.
	ID string `json:"id"`

	// TokenHash is the hex-encoded SHA-256 of the cookie token.
	// Never exposed via JSON.
	TokenHash string `json:"-"`

	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`

	// ExpiresAt is the rolling expiry deadline, refreshed on activity.
	ExpiresAt time.Time `json:"expires_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session's rolling deadline has passed at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
