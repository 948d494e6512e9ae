package session

import (
	"context"

	"github.com/tobibamidele/spotter/models"
)

// Store holds the single current session and the active-account pointer.
// Implementations must keep Save atomic from a concurrent reader's
// perspective: a reader never observes a half-written session.
//
// The two pieces of state are co-located on purpose: Clear cascades to the
// active-account pointer (logout, account deletion), while expiry-driven
// clearing inside Get wipes only the session so the expired account stays
// selected for re-login.
type Store interface {
	// Save persists the session. A session without a session cookie is
	// rejected; absence is represented by not storing one at all.
	Save(ctx context.Context, s models.Session) error

	// Get returns the current session, or nil when absent, corrupt or
	// expired. Reading an expired or corrupt session clears it so a
	// subsequent Get is consistent with the first.
	Get(ctx context.Context) *models.Session

	// Clear removes the session and clears the active-account pointer.
	Clear(ctx context.Context) error

	// SetActiveAccountID updates the active-account pointer.
	SetActiveAccountID(ctx context.Context, accountID string) error

	// ActiveAccountID returns the current pointer, "" when unset.
	ActiveAccountID() string

	// WatchActiveAccountID returns a channel carrying the pointer value
	// on every change, including clears (sent as ""). The current value
	// is delivered immediately on subscription. The channel is conflated:
	// a slow reader sees the latest value, not every intermediate one.
	// It is closed when ctx ends.
	WatchActiveAccountID(ctx context.Context) <-chan string

	// ClearActiveAccountID clears the pointer, leaving the session alone.
	ClearActiveAccountID(ctx context.Context) error
}
