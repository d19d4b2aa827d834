package domain

import "time"

// Todo belongs to exactly one owner. The owner id is a lookup key:
// every repository operation is filtered by it, so a todo is never
// visible to any other user.
type Todo struct {
	ID        string
	OwnerID   string
	Text      string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
