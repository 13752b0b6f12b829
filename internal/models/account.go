package models

import "time"

// TreasuryAccountID is the ledger account held by the system itself.
// Payment residue accumulates here until the provider withdraws it.
const TreasuryAccountID = "@treasury"

// Account is a value-ledger account balance in currency minor units.
type Account struct {
	ID        string    `db:"id" json:"id"`
	Balance   int64     `db:"balance" json:"balance"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
