package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds the encoded salted hash, never the plain text.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}
