package model

// Identity is the authenticated caller resolved from a verified token.
// It is attached to the request context by the auth middleware.
type Identity struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
}
