package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tobibamidele/spotter/crypto"
	"github.com/tobibamidele/spotter/errors"
	"github.com/tobibamidele/spotter/models"
)

// fileState is the persisted payload: the session and the active-account
// pointer live in the same encrypted file, mirroring their co-location in
// the store contract.
type fileState struct {
	Session         *models.Session `json:"session,omitempty"`
	ActiveAccountID string          `json:"active_account_id,omitempty"`
}

// FileStore is an encrypted file-backed Store. The file holds a random
// salt followed by a chacha20poly1305-sealed JSON payload; the key is
// derived from the configured passphrase with scrypt.
type FileStore struct {
	path string
	key  []byte

	mu       sync.Mutex
	state    fileState
	salt     []byte
	watchers map[chan string]struct{}
}

// NewFileStore opens or creates the encrypted session file. Failure to set
// up the key or the file is a construction-time error: there is no
// unencrypted fallback, callers are meant to fail fast.
func NewFileStore(path, passphrase string) (*FileStore, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("session store passphrase must not be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session store directory: %w", err)
		}
	}

	s := &FileStore{
		path:     path,
		watchers: make(map[chan string]struct{}),
	}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		salt, err := crypto.NewSalt()
		if err != nil {
			return nil, err
		}
		s.salt = salt
	case err != nil:
		return nil, fmt.Errorf("failed to read session store: %w", err)
	case len(raw) < crypto.SaltSize:
		// Truncated file: start over with a fresh salt.
		salt, err := crypto.NewSalt()
		if err != nil {
			return nil, err
		}
		s.salt = salt
	default:
		s.salt = raw[:crypto.SaltSize]
	}

	key, err := crypto.DeriveKey(passphrase, s.salt)
	if err != nil {
		return nil, err
	}
	s.key = key

	if len(raw) > crypto.SaltSize {
		if plaintext, err := crypto.Open(key, raw[crypto.SaltSize:]); err == nil {
			// Corrupt JSON leaves the zero state, same as a wrong key.
			_ = json.Unmarshal(plaintext, &s.state)
		}
	}

	return s, nil
}

// Save persists the session atomically.
func (s *FileStore) Save(ctx context.Context, sess models.Session) error {
	if sess.SessionCookie == "" {
		return errors.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	s.state.Session = &sess
	if err := s.persistLocked(); err != nil {
		s.state = prev
		return err
	}
	return nil
}

// Get returns the current session or nil. An expired session is cleared as
// a side effect; the active-account pointer is kept so the account can be
// re-authenticated.
func (s *FileStore) Get(ctx context.Context) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.state.Session
	if sess == nil || sess.SessionCookie == "" {
		return nil
	}
	if sess.IsExpired() {
		s.state.Session = nil
		_ = s.persistLocked()
		return nil
	}

	cp := *sess
	return &cp
}

// Clear removes the session and cascades to the active-account pointer.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	s.state = fileState{}
	if err := s.persistLocked(); err != nil {
		s.state = prev
		return err
	}
	if prev.ActiveAccountID != "" {
		s.notifyLocked("")
	}
	return nil
}

// SetActiveAccountID updates the active-account pointer.
func (s *FileStore) SetActiveAccountID(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.ActiveAccountID
	s.state.ActiveAccountID = accountID
	if err := s.persistLocked(); err != nil {
		s.state.ActiveAccountID = prev
		return err
	}
	s.notifyLocked(accountID)
	return nil
}

// ActiveAccountID returns the current pointer, "" when unset.
func (s *FileStore) ActiveAccountID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveAccountID
}

// ClearActiveAccountID clears the pointer only.
func (s *FileStore) ClearActiveAccountID(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.ActiveAccountID
	s.state.ActiveAccountID = ""
	if err := s.persistLocked(); err != nil {
		s.state.ActiveAccountID = prev
		return err
	}
	if prev != "" {
		s.notifyLocked("")
	}
	return nil
}

// WatchActiveAccountID subscribes to pointer changes. The channel is
// conflated: when the reader lags, the stale value is replaced by the
// newest one.
func (s *FileStore) WatchActiveAccountID(ctx context.Context) <-chan string {
	ch := make(chan string, 1)

	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	ch <- s.state.ActiveAccountID
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, ch)
		s.mu.Unlock()
		close(ch)
	}()

	return ch
}

func (s *FileStore) notifyLocked(value string) {
	for ch := range s.watchers {
		select {
		case ch <- value:
		default:
			// Replace the unread stale value.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- value:
			default:
			}
		}
	}
}

// persistLocked writes the sealed state via a temp file and rename so a
// concurrent process never reads a half-written file.
func (s *FileStore) persistLocked() error {
	plaintext, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	sealed, err := crypto.Seal(s.key, plaintext)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	data := append(append([]byte{}, s.salt...), sealed...)
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session store: %w", err)
	}
	return nil
}
