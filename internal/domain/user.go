package domain

import "time"

// User is the domain entity for a directory record.
type User struct {
	ID         string
	Name       string
	Email      string
	Age        int
	Occupation string

	CreatedAt time.Time
	UpdatedAt time.Time
}
