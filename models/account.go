package models

import "time"

// MaxAccounts is the cap on concurrently stored accounts.
const MaxAccounts = 4

// Account represents a saved university account. The cookie blob is the
// last fully captured cookie header string for that account and is opaque
// to callers.
type Account struct {
	ID               string    `json:"id" db:"id"`
	Alias            string    `json:"alias" db:"alias"`
	Email            string    `json:"email" db:"email"`
	CookieBlob       string    `json:"-" db:"cookie_blob"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	LastUsedAt       time.Time `json:"last_used_at" db:"last_used_at"`
	SessionExpiresAt time.Time `json:"session_expires_at" db:"session_expires_at"`
}

// HasLiveSession reports whether the account's last captured session is
// still within its validity window.
func (a *Account) HasLiveSession() bool {
	return time.Now().Before(a.SessionExpiresAt)
}

// Session derives a Session from the account's stored cookie blob.
// The expiry is the account's recorded one, never a fresh window:
// activating an account must not extend a session the server may have
// already forgotten. Returns false when the blob lacks the session cookie.
func (a *Account) Session() (Session, bool) {
	sess, ok := SessionFromCookieHeader(a.CookieBlob, time.Time{})
	if !ok {
		return Session{}, false
	}
	sess.ExpiresAt = a.SessionExpiresAt
	return sess, true
}
