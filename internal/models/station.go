package models

import "time"

// Station represents a registered charging station profile.
// Rate is charged in currency minor units per Wh; Balance is the prepaid
// electricity credit in currency minor units.
type Station struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Registered   bool      `db:"registered" json:"registered"`
	Rate         int64     `db:"rate" json:"rate"`
	Balance      int64     `db:"balance" json:"balance"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}
