package domain

import "time"

// ID is the store-generated user identifier, exposed as an opaque hex
// string outside the repository layer.
type ID string

type User struct {
	ID           ID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
