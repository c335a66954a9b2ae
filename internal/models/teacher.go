package models

import "time"

// Teacher is a staff roster identity imported from the school system,
// distinct from the User account that may later claim it.
type Teacher struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
