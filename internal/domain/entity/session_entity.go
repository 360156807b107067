package entity

import "time"

// Session binds a random session id to a user for a limited time.
type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}
