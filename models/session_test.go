package models

import (
	"testing"
	"time"
)

func TestParseCookieHeader(t *testing.T) {
	cookies := ParseCookieHeader("takeaspot_session=abc123; XSRF-TOKEN=tok%3D%3D; flat")
	if cookies["takeaspot_session"] != "abc123" {
		t.Errorf("session cookie = %q, want abc123", cookies["takeaspot_session"])
	}
	if cookies["XSRF-TOKEN"] != "tok%3D%3D" {
		t.Errorf("xsrf cookie = %q, want raw encoded value", cookies["XSRF-TOKEN"])
	}
	if _, ok := cookies["flat"]; ok {
		t.Error("pair without = should be skipped")
	}
}

func TestSessionFromCookieHeader(t *testing.T) {
	issued := time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC)

	sess, ok := SessionFromCookieHeader("takeaspot_session=abc; XSRF-TOKEN=tok", issued)
	if !ok {
		t.Fatal("expected a session")
	}
	if sess.SessionCookie != "abc" || sess.XSRFToken != "tok" {
		t.Errorf("unexpected session %+v", sess)
	}
	if want := issued.Add(SessionDuration); !sess.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", sess.ExpiresAt, want)
	}

	// No session cookie means no session, even with other cookies present.
	if _, ok := SessionFromCookieHeader("XSRF-TOKEN=tok; other=1", issued); ok {
		t.Error("header without session cookie must not yield a session")
	}
	if _, ok := SessionFromCookieHeader("takeaspot_session=", issued); ok {
		t.Error("empty session cookie must not yield a session")
	}
}

func TestSessionValidity(t *testing.T) {
	live := NewSession("abc", "", time.Now())
	if !live.IsValid() || live.IsExpired() {
		t.Error("freshly issued session should be valid")
	}

	dead := NewSession("abc", "", time.Now().Add(-SessionDuration-time.Minute))
	if dead.IsValid() || !dead.IsExpired() {
		t.Error("session past its window should be expired")
	}
}

func TestAccountSessionKeepsRecordedExpiry(t *testing.T) {
	expires := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)
	a := &Account{
		CookieBlob:       "takeaspot_session=abc; XSRF-TOKEN=tok",
		SessionExpiresAt: expires,
	}

	sess, ok := a.Session()
	if !ok {
		t.Fatal("expected a session from the blob")
	}
	if !sess.ExpiresAt.Equal(expires) {
		t.Errorf("ExpiresAt = %v, want the account's recorded %v", sess.ExpiresAt, expires)
	}

	a.CookieBlob = "other=1"
	if _, ok := a.Session(); ok {
		t.Error("blob without session cookie must not materialize")
	}
}
