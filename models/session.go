package models

import (
	"strings"
	"time"
)

// Cookie names issued by the booking service.
const (
	SessionCookieName = "takeaspot_session"
	XSRFCookieName    = "XSRF-TOKEN"
)

// SessionDuration is the fixed lifetime of a session cookie, counted from
// the moment a new session cookie is observed (not from every request).
const SessionDuration = 17_400_000 * time.Millisecond // 4.8 hours

// Session is the locally held proof-of-login: the opaque session cookie,
// the anti-CSRF token and the absolute expiry time.
// A Session without a session cookie does not exist; stores represent that
// case as absence, never as a zero value.
type Session struct {
	SessionCookie string    `json:"session_cookie"`
	XSRFToken     string    `json:"xsrf_token,omitempty"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// IsValid reports whether the session has not yet expired.
func (s *Session) IsValid() bool {
	return time.Now().Before(s.ExpiresAt)
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return !s.IsValid()
}

// NewSession builds a Session issued at the given time. The expiry is
// always issuance time plus SessionDuration.
func NewSession(sessionCookie, xsrfToken string, issuedAt time.Time) Session {
	return Session{
		SessionCookie: sessionCookie,
		XSRFToken:     xsrfToken,
		ExpiresAt:     issuedAt.Add(SessionDuration),
	}
}

// ParseCookieHeader parses a raw "k=v; k2=v2" cookie header string into a
// name/value map. Malformed pairs are skipped.
func ParseCookieHeader(cookieString string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(cookieString, ";") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		out[kv[0]] = kv[1]
	}
	return out
}

// SessionFromCookieHeader derives a Session from a captured cookie header
// string. It returns false when the session cookie is not present.
func SessionFromCookieHeader(cookieString string, issuedAt time.Time) (Session, bool) {
	cookies := ParseCookieHeader(cookieString)
	sessionCookie, ok := cookies[SessionCookieName]
	if !ok || sessionCookie == "" {
		return Session{}, false
	}
	return NewSession(sessionCookie, cookies[XSRFCookieName], issuedAt), true
}
