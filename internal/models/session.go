package models

import "time"

// ChargeSession represents one charge event between an owner and a station.
// EndTime and EnergyWh are meaningful only once Completed is true.
// Completed and Paid are one-way flags: a session moves Created -> Completed
// -> Paid and never back.
type ChargeSession struct {
	ID        string     `db:"id" json:"id"`
	OwnerID   string     `db:"owner_id" json:"owner_id"`
	StationID string     `db:"station_id" json:"station_id"`
	StartTime time.Time  `db:"start_time" json:"start_time"`
	EndTime   *time.Time `db:"end_time" json:"end_time,omitempty"`
	EnergyWh  int64      `db:"energy_wh" json:"energy_wh"`
	Completed bool       `db:"completed" json:"completed"`
	Paid      bool       `db:"paid" json:"paid"`
}
