package model

import "time"

// User represents an API account.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"` // Never expose password hash
	Firstname *string   `json:"firstname,omitempty"`
	Lastname  *string   `json:"lastname,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Session represents a server-side record backing an issued access token.
// The client holds the signed token; the store holds a hash of it. Logout
// flips Revoked so subsequent verification rejects the token.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	TokenHash string    `json:"-"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
}

// Expired reports whether the session's expiry has passed at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Active reports whether the session can still authenticate requests.
func (s *Session) Active(now time.Time) bool {
	return !s.Revoked && !s.Expired(now)
}
