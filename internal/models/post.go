package models

import "time"

// Post is a short message owned by an account.
type Post struct {
	ID        int64
	OwnerID   int64
	Text      string
	CreatedAt time.Time
}
