// Package spotter is a session and multi-account engine for TakeASpot
// based booking sites. The sites expose no formal API: logging in means
// capturing cookies from an embedded browser after a human completes the
// form, and every later request replays those cookies plus a derived
// anti-CSRF header. spotter owns that session lifecycle, up to four
// saved accounts with one active at a time, and the normalization of the
// service's irregular availability JSON into a stable model.
package spotter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tobibamidele/spotter/client"
	"github.com/tobibamidele/spotter/config"
	"github.com/tobibamidele/spotter/errors"
	"github.com/tobibamidele/spotter/events"
	"github.com/tobibamidele/spotter/models"
	"github.com/tobibamidele/spotter/session"
	"github.com/tobibamidele/spotter/store"
	"github.com/tobibamidele/spotter/store/mysql"
	"github.com/tobibamidele/spotter/store/postgres"
	"github.com/tobibamidele/spotter/store/sqlite"
	"github.com/tobibamidele/spotter/validator"
)

// DefaultAccountAlias names accounts whose page yielded no display name.
const DefaultAccountAlias = "New Account"

// Engine is the main entry point. It wires the encrypted session store,
// the durable account store, the event bus and the API client.
//
// One Engine materializes one session at a time: callers must serialize
// SetActiveAccount against requests still in flight for the previously
// active account, or those requests will run with the new session.
type Engine struct {
	config   *config.Config
	sessions session.Store
	accounts store.Store
	bus      *events.Bus
	api      *client.Client
	logger   zerolog.Logger
}

// New creates a new Engine with the provided configuration
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Initialize the appropriate account database store
	var st store.Store
	var err error

	switch cfg.Database.Type {
	case config.PostgreSQL:
		st, err = postgres.New(
			cfg.Database.ConnectionURL,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
			cfg.Database.ConnMaxLife,
		)
	case config.MySQL:
		st, err = mysql.New(
			cfg.Database.ConnectionURL,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
			cfg.Database.ConnMaxLife,
		)
	case config.SQLite:
		st, err = sqlite.New(
			cfg.Database.ConnectionURL,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
			cfg.Database.ConnMaxLife,
		)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize account store: %w", err)
	}

	// Run migrations if enabled
	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := st.RunMigrations(ctx); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// The session store fails fast when encryption cannot be set up;
	// there is no unencrypted fallback.
	sessions, err := session.NewFileStore(cfg.Session.StorePath, cfg.Session.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	return NewWithStores(cfg, sessions, st, zerolog.Nop()), nil
}

// NewWithStores creates an Engine on top of caller-supplied stores. Every
// Engine built this way is fully isolated, which is how tests run several
// engines concurrently.
func NewWithStores(cfg *config.Config, sessions session.Store, accounts store.Store, logger zerolog.Logger) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	bus := events.NewBus()
	return &Engine{
		config:   cfg,
		sessions: sessions,
		accounts: accounts,
		bus:      bus,
		api:      client.New(cfg, sessions, bus, logger),
		logger:   logger,
	}
}

// Close closes the account database connection
func (e *Engine) Close() error {
	return e.accounts.Close()
}

// Client returns the underlying API client (for advanced use cases)
func (e *Engine) Client() *client.Client {
	return e.api
}

// SubscribeSessionExpired subscribes to session-expiry notifications.
// Delivery is best-effort and carries no ordering guarantee relative to
// the request that observed the expiry; the channel closes with ctx.
func (e *Engine) SubscribeSessionExpired(ctx context.Context) <-chan events.SessionExpired {
	return e.bus.Subscribe(ctx)
}

// CheckSession reports whether a valid session is currently materialized.
func (e *Engine) CheckSession(ctx context.Context) bool {
	return e.sessions.Get(ctx) != nil
}

// ActiveAccountID returns the id of the active account, "" when none.
func (e *Engine) ActiveAccountID() string {
	return e.sessions.ActiveAccountID()
}

// WatchActiveAccountID observes every change of the active-account
// pointer, including clears.
func (e *Engine) WatchActiveAccountID(ctx context.Context) <-chan string {
	return e.sessions.WatchActiveAccountID(ctx)
}

// RequireActiveAccount returns the active account id or an error telling
// the user to activate one.
func (e *Engine) RequireActiveAccount(ctx context.Context) (string, error) {
	id := e.sessions.ActiveAccountID()
	if id == "" {
		return "", errors.ErrNoActiveAccount
	}
	return id, nil
}

// Logout drops the session and the active-account pointer. Stored
// accounts are untouched.
func (e *Engine) Logout(ctx context.Context) error {
	return e.sessions.Clear(ctx)
}

// ProcessCapturedLogin consumes the cookie header and page HTML captured
// by the embedded browser after a first-time login. When the capture
// carries the session cookie it materializes a fresh session, saves a new
// account holding the raw cookie blob and activates it.
//
// The account write is best-effort: if the account store fails, the local
// session is already usable and true is still returned.
func (e *Engine) ProcessCapturedLogin(ctx context.Context, cookieString, pageHTML string) (bool, error) {
	if err := validator.ValidateCookieHeader(cookieString); err != nil {
		return false, err
	}

	now := time.Now()
	sess, ok := models.SessionFromCookieHeader(cookieString, now)
	if !ok {
		return false, errors.ErrMissingSessionCookie
	}

	if err := e.sessions.Save(ctx, sess); err != nil {
		return false, fmt.Errorf("failed to save session: %w", err)
	}

	alias := client.ExtractAlias(pageHTML)
	if alias == "" {
		alias = DefaultAccountAlias
	}

	account := &models.Account{
		ID:               uuid.New().String(),
		Alias:            alias,
		CookieBlob:       cookieString,
		CreatedAt:        now,
		LastUsedAt:       now,
		SessionExpiresAt: sess.ExpiresAt,
	}

	if err := e.accounts.CreateAccount(ctx, account); err != nil {
		e.logger.Warn().Err(err).Msg("session saved but account could not be stored")
		return true, nil
	}

	if err := e.sessions.SetActiveAccountID(ctx, account.ID); err != nil {
		e.logger.Warn().Err(err).Str("account_id", account.ID).Msg("failed to activate new account")
	}
	return true, nil
}

// ProcessCapturedReLogin refreshes an existing account from a new browser
// capture: the cookie blob and expiry are updated, the session is
// re-materialized and the account becomes active.
func (e *Engine) ProcessCapturedReLogin(ctx context.Context, accountID, cookieString string) error {
	if err := validator.ValidateCookieHeader(cookieString); err != nil {
		return err
	}

	now := time.Now()
	sess, ok := models.SessionFromCookieHeader(cookieString, now)
	if !ok {
		return errors.ErrMissingSessionCookie
	}

	// Re-read before mutating; the account store is the source of truth.
	account, err := e.accounts.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	account.CookieBlob = cookieString
	account.LastUsedAt = now
	account.SessionExpiresAt = sess.ExpiresAt
	if err := e.accounts.UpdateAccount(ctx, account); err != nil {
		return err
	}

	if err := e.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return e.sessions.SetActiveAccountID(ctx, accountID)
}

// Accounts lists stored accounts in insertion order.
func (e *Engine) Accounts(ctx context.Context) ([]*models.Account, error) {
	return e.accounts.ListAccounts(ctx)
}

// RenameAccount updates an account's alias.
func (e *Engine) RenameAccount(ctx context.Context, accountID, alias string) error {
	if err := validator.ValidateAlias(alias); err != nil {
		return err
	}

	account, err := e.accounts.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	account.Alias = alias
	return e.accounts.UpdateAccount(ctx, account)
}

// RemoveAccount deletes an account. Deleting the active account clears
// the session and the active pointer; the pointer is a weak reference and
// must never dangle.
func (e *Engine) RemoveAccount(ctx context.Context, accountID string) error {
	activeID := e.sessions.ActiveAccountID()

	if err := e.accounts.DeleteAccount(ctx, accountID); err != nil {
		return err
	}

	if activeID == accountID {
		if err := e.sessions.Clear(ctx); err != nil {
			return fmt.Errorf("account deleted but session not cleared: %w", err)
		}
	}
	return nil
}

// SetActiveAccount makes the account the active one and materializes its
// session from the stored cookie blob. Callers must not switch while a
// request for the previous account is in flight.
func (e *Engine) SetActiveAccount(ctx context.Context, accountID string) error {
	account, err := e.accounts.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	now := time.Now()
	account.LastUsedAt = now
	if err := e.accounts.UpdateAccount(ctx, account); err != nil {
		return err
	}

	if err := e.sessions.SetActiveAccountID(ctx, accountID); err != nil {
		return err
	}

	// The pointer may briefly reference an account whose session is not
	// materialized yet; readers tolerate that window.
	sess, ok := account.Session()
	if !ok {
		e.logger.Debug().Str("account_id", accountID).Msg("account blob has no session cookie, re-login required")
		return nil
	}
	return e.sessions.Save(ctx, sess)
}

// LibraryInfo picks the configured service from the catalog, falling back
// to the first one.
func (e *Engine) LibraryInfo(ctx context.Context) (*models.Service, error) {
	services, err := e.api.Services(ctx)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, errors.ErrNoServices
	}

	if want := e.config.Remote.DefaultServiceID; want != 0 {
		for i := range services {
			if services[i].ID == want {
				return &services[i], nil
			}
		}
	}
	return &services[0], nil
}

// Availability returns the normalized availability model for a service.
func (e *Engine) Availability(ctx context.Context, serviceID int) (map[string]models.DaySlots, error) {
	return e.api.ServiceSlots(ctx, serviceID)
}

// BookTable books a table. Malformed input short-circuits locally before
// any network call.
func (e *Engine) BookTable(ctx context.Context, serviceID, tableID int, date, start, end string) (int, error) {
	if err := validator.ValidateBookingInput(date, start, end); err != nil {
		return 0, err
	}
	return e.api.MakeBooking(ctx, serviceID, tableID, 1, date, start, end)
}

// ExtendBooking chains extra slots onto an existing booking.
func (e *Engine) ExtendBooking(ctx context.Context, bookingID int, items []models.MultiBookingItem) error {
	for _, item := range items {
		if err := validator.ValidateBookingInput(item.Date, item.Start, item.End); err != nil {
			return err
		}
	}
	return e.api.MakeMultiBooking(ctx, bookingID, items)
}

// MyBookings returns the scraped bookings list.
func (e *Engine) MyBookings(ctx context.Context) ([]models.Booking, error) {
	return e.api.MyBookings(ctx)
}

// CancelBooking cancels a booking.
func (e *Engine) CancelBooking(ctx context.Context, bookingID int) error {
	return e.api.CancelBooking(ctx, bookingID)
}

// CheckinBooking checks in to a booking.
func (e *Engine) CheckinBooking(ctx context.Context, bookingID, people int, freeCapacity bool) error {
	return e.api.MakeCheckin(ctx, bookingID, people, freeCapacity)
}
