package db

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS owners (
    id text PRIMARY KEY,
    name text NOT NULL,
    registered boolean NOT NULL DEFAULT true,
    registered_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS stations (
    id text PRIMARY KEY,
    name text NOT NULL,
    registered boolean NOT NULL DEFAULT true,
    rate bigint NOT NULL,
    balance bigint NOT NULL DEFAULT 0,
    registered_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS charge_sessions (
    id text PRIMARY KEY,
    owner_id text NOT NULL REFERENCES owners(id),
    station_id text NOT NULL REFERENCES stations(id),
    start_time timestamptz NOT NULL,
    end_time timestamptz,
    energy_wh bigint NOT NULL DEFAULT 0,
    completed boolean NOT NULL DEFAULT false,
    paid boolean NOT NULL DEFAULT false
);

CREATE INDEX IF NOT EXISTS charge_sessions_owner_idx
ON charge_sessions (owner_id, start_time DESC);

CREATE TABLE IF NOT EXISTS ledger_accounts (
    id text PRIMARY KEY,
    balance bigint NOT NULL DEFAULT 0 CHECK (balance >= 0),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);
`

// Migrate applies the voltledger schema. Statements are idempotent so the
// call is safe on every startup.
func Migrate(ctx context.Context, pool *sql.DB) error {
	_, err := pool.ExecContext(ctx, schema)
	return err
}
