package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/tobibamidele/spotter/errors"
	"github.com/tobibamidele/spotter/models"
)

// MySQLStore implements the Store interface for MySQL
type MySQLStore struct {
	db *sql.DB
}

// New creates a new MySQL store
func New(connectionURL string, maxOpenConns, maxIdleConns int, connMaxLife time.Duration) (*MySQLStore, error) {
	db, err := sql.Open("mysql", connectionURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLife)

	// Test the connection
	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &MySQLStore{db: db}, nil
}

// Helper function to check for unique constraint violations in MySQL
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Error 1062")
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

// CreateAccount creates a new account, enforcing the account cap
func (s *MySQLStore) CreateAccount(ctx context.Context, account *models.Account) error {
	count, err := s.CountAccounts(ctx)
	if err != nil {
		return err
	}
	if count >= models.MaxAccounts {
		return errors.ErrAccountLimit
	}

	query := `
		INSERT INTO accounts (
			id, alias, email, cookie_blob, created_at, last_used_at, session_expires_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		account.ID, account.Alias, account.Email, account.CookieBlob,
		account.CreatedAt, account.LastUsedAt, account.SessionExpiresAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s already exists", account.ID)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetAccountByID retrieves an account by ID
func (s *MySQLStore) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, alias, email, cookie_blob, created_at, last_used_at, session_expires_at
		FROM accounts WHERE id = ?
	`

	var account models.Account
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.Alias, &account.Email, &account.CookieBlob,
		&account.CreatedAt, &account.LastUsedAt, &account.SessionExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

// ListAccounts returns all accounts in insertion order
func (s *MySQLStore) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	query := `
		SELECT id, alias, email, cookie_blob, created_at, last_used_at, session_expires_at
		FROM accounts ORDER BY seq
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(
			&account.ID, &account.Alias, &account.Email, &account.CookieBlob,
			&account.CreatedAt, &account.LastUsedAt, &account.SessionExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// UpdateAccount updates an existing account
func (s *MySQLStore) UpdateAccount(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts SET
			alias = ?, email = ?, cookie_blob = ?,
			last_used_at = ?, session_expires_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		account.Alias, account.Email, account.CookieBlob,
		account.LastUsedAt, account.SessionExpiresAt, account.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return errors.ErrAccountNotFound
	}

	return nil
}

// DeleteAccount deletes an account
func (s *MySQLStore) DeleteAccount(ctx context.Context, id string) error {
	query := `DELETE FROM accounts WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return errors.ErrAccountNotFound
	}

	return nil
}

// CountAccounts returns the number of stored accounts
func (s *MySQLStore) CountAccounts(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}
