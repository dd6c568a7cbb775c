package postgres

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		api_key       TEXT NOT NULL UNIQUE,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wallets (
		address    TEXT PRIMARY KEY,
		owner_id   BIGINT NOT NULL REFERENCES users(id),
		balance    NUMERIC(30,18) NOT NULL DEFAULT 0 CHECK (balance >= 0),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wallets_owner ON wallets(owner_id)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		seq          BIGSERIAL PRIMARY KEY,
		id           UUID NOT NULL UNIQUE,
		from_address TEXT NOT NULL,
		to_address   TEXT NOT NULL,
		amount       NUMERIC(30,18) NOT NULL,
		fee          NUMERIC(30,18) NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_from ON transactions(from_address)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_to ON transactions(to_address)`,
}

// Migrate applies the schema. Statements are idempotent so startup can
// run this unconditionally.
func Migrate(ctx context.Context, pool Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
