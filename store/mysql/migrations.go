package mysql

import (
	"context"
	"fmt"
)

// RunMigrations creates all necessary tables for the account store
func (s *MySQLStore) RunMigrations(ctx context.Context) error {
	migrations := []string{
		createAccountsTable,
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
	seq BIGINT AUTO_INCREMENT,
	id VARCHAR(64) PRIMARY KEY,
	alias VARCHAR(255) NOT NULL,
	email VARCHAR(255),
	cookie_blob TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	last_used_at DATETIME NOT NULL,
	session_expires_at DATETIME NOT NULL,
	INDEX idx_accounts_last_used_at (last_used_at),
	KEY idx_accounts_seq (seq)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
`
