package models

import "time"

// Owner represents a registered EV owner profile.
type Owner struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Registered   bool      `db:"registered" json:"registered"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}
