package domain

import "time"

// Session is a server-side login session used by the authentication layer to
// rehydrate a User between requests.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
