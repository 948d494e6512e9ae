package store

import (
	"context"

	"github.com/tobibamidele/spotter/models"
)

// Store defines the interface for durable account persistence.
// All database implementations must implement this interface.
//
// Accounts are listed in insertion order and never re-sorted. CreateAccount
// enforces the models.MaxAccounts cap and fails without mutating storage
// once it is reached. The active-account pointer is not stored here; it is
// a weak reference held by the session store.
type Store interface {
	// Close closes the database connection
	Close() error

	// RunMigrations runs database migrations
	RunMigrations(ctx context.Context) error

	// Account operations
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]*models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, id string) error
	CountAccounts(ctx context.Context) (int, error)
}
