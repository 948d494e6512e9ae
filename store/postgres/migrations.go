package postgres

import (
	"context"
	"fmt"
)

// RunMigrations creates all necessary tables for the account store
func (s *PostgresStore) RunMigrations(ctx context.Context) error {
	migrations := []string{
		createAccountsTable,
		createIndexes,
	}

	for i, migration := range migrations {
		if _, err := s.db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const createAccountsTable = `
CREATE TABLE IF NOT EXISTS accounts (
	seq BIGSERIAL,
	id TEXT PRIMARY KEY,
	alias TEXT NOT NULL,
	email TEXT,
	cookie_blob TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	last_used_at TIMESTAMPTZ NOT NULL,
	session_expires_at TIMESTAMPTZ NOT NULL
);
`

const createIndexes = `
CREATE INDEX IF NOT EXISTS idx_accounts_last_used_at ON accounts(last_used_at);
`
