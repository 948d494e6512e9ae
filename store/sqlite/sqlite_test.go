package sqlite

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tobibamidele/spotter/errors"
	"github.com/tobibamidele/spotter/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(":memory:", 1, 1, time.Minute)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.RunMigrations(context.Background()); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	return s
}

func testAccount(alias string) *models.Account {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Account{
		ID:               uuid.New().String(),
		Alias:            alias,
		CookieBlob:       "takeaspot_session=abc; XSRF-TOKEN=tok",
		CreatedAt:        now,
		LastUsedAt:       now,
		SessionExpiresAt: now.Add(4 * time.Hour),
	}
}

func TestAccountCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	account := testAccount("Cuenta 1")
	if err := s.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	got, err := s.GetAccountByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetAccountByID: %v", err)
	}
	if got.Alias != "Cuenta 1" || got.CookieBlob != account.CookieBlob {
		t.Errorf("GetAccountByID = %+v", got)
	}

	got.Alias = "Renombrada"
	if err := s.UpdateAccount(ctx, got); err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	got, err = s.GetAccountByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetAccountByID after update: %v", err)
	}
	if got.Alias != "Renombrada" {
		t.Errorf("alias after update = %q", got.Alias)
	}

	if err := s.DeleteAccount(ctx, account.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, err := s.GetAccountByID(ctx, account.ID); !stderrors.Is(err, errors.ErrAccountNotFound) {
		t.Errorf("GetAccountByID after delete = %v, want ErrAccountNotFound", err)
	}
}

func TestGetAccountNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetAccountByID(context.Background(), "missing"); !stderrors.Is(err, errors.ErrAccountNotFound) {
		t.Errorf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestUpdateAccountNotFound(t *testing.T) {
	s := newTestStore(t)
	account := testAccount("ghost")
	if err := s.UpdateAccount(context.Background(), account); !stderrors.Is(err, errors.ErrAccountNotFound) {
		t.Errorf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestDeleteAccountNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteAccount(context.Background(), "missing"); !stderrors.Is(err, errors.ErrAccountNotFound) {
		t.Errorf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestListAccountsInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		a := testAccount(fmt.Sprintf("Cuenta %d", i+1))
		if err := s.CreateAccount(ctx, a); err != nil {
			t.Fatalf("CreateAccount: %v", err)
		}
		ids = append(ids, a.ID)
	}

	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("len = %d, want 3", len(accounts))
	}
	for i, a := range accounts {
		if a.ID != ids[i] {
			t.Errorf("accounts[%d].ID = %s, want %s (insertion order)", i, a.ID, ids[i])
		}
	}
}

func TestAccountCapEnforced(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < models.MaxAccounts; i++ {
		if err := s.CreateAccount(ctx, testAccount(fmt.Sprintf("Cuenta %d", i+1))); err != nil {
			t.Fatalf("CreateAccount %d: %v", i+1, err)
		}
	}

	err := s.CreateAccount(ctx, testAccount("one too many"))
	if !stderrors.Is(err, errors.ErrAccountLimit) {
		t.Fatalf("err = %v, want ErrAccountLimit", err)
	}

	// The failed insert must not have mutated the store.
	count, err := s.CountAccounts(ctx)
	if err != nil {
		t.Fatalf("CountAccounts: %v", err)
	}
	if count != models.MaxAccounts {
		t.Errorf("count = %d, want %d", count, models.MaxAccounts)
	}
}
