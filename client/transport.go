package client

import (
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tobibamidele/spotter/config"
	"github.com/tobibamidele/spotter/models"
	"github.com/tobibamidele/spotter/session"
)

// sessionTransport is the cookie/XSRF adapter around every outbound call.
//
// On the way out it attaches the browser header set the service expects,
// the stored session cookies and the decoded X-XSRF-TOKEN header. On the
// way back it captures the session-defining cookies and merges them into
// the session store. It is the sole writer of the session from response
// traffic and never touches the account store.
type sessionTransport struct {
	base     http.RoundTripper
	sessions session.Store
	remote   config.RemoteConfig
	limiter  *rate.Limiter
	logger   zerolog.Logger
}

func newSessionTransport(base http.RoundTripper, sessions session.Store, remote config.RemoteConfig, limiter *rate.Limiter, logger zerolog.Logger) *sessionTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &sessionTransport{
		base:     base,
		sessions: sessions,
		remote:   remote,
		limiter:  limiter,
		logger:   logger,
	}
}

func (t *sessionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	req = req.Clone(req.Context())

	// Fixed headers the service requires on every call; without them it
	// rejects the request as non-browser traffic.
	req.Header.Set("User-Agent", t.remote.UserAgent)
	req.Header.Set("Accept", t.remote.Accept)
	req.Header.Set("X-Requested-With", t.remote.RequestedWith)

	if sess := t.sessions.Get(req.Context()); sess != nil {
		req.AddCookie(&http.Cookie{Name: models.SessionCookieName, Value: sess.SessionCookie})
		if sess.XSRFToken != "" {
			req.AddCookie(&http.Cookie{Name: models.XSRFCookieName, Value: sess.XSRFToken})
			req.Header.Set("X-XSRF-TOKEN", decodeXSRFToken(sess.XSRFToken))
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	t.captureCookies(req, resp)
	return resp, nil
}

// decodeXSRFToken percent-decodes the token the way a browser would before
// echoing it in a header. The server sometimes issues it URL-encoded; when
// decoding fails the raw value is sent instead of failing the request.
func decodeXSRFToken(token string) string {
	decoded, err := url.QueryUnescape(token)
	if err != nil {
		return token
	}
	return decoded
}

// captureCookies merges session-defining response cookies into the stored
// session. New values win per field and missing fields fall back to the
// stored ones. The expiry is only recomputed when the session cookie
// itself changed; a refreshed XSRF token alone never extends a session's
// lifetime.
func (t *sessionTransport) captureCookies(req *http.Request, resp *http.Response) {
	var (
		newSessionCookie, newXSRFToken string
		haveSession, haveXSRF          bool
	)
	for _, c := range resp.Cookies() {
		switch c.Name {
		case models.SessionCookieName:
			newSessionCookie, haveSession = c.Value, true
		case models.XSRFCookieName:
			newXSRFToken, haveXSRF = c.Value, true
		}
	}
	if !haveSession && !haveXSRF {
		return
	}

	ctx := req.Context()
	current := t.sessions.Get(ctx)

	sessionCookie := newSessionCookie
	if !haveSession && current != nil {
		sessionCookie = current.SessionCookie
	}
	xsrfToken := newXSRFToken
	if !haveXSRF && current != nil {
		xsrfToken = current.XSRFToken
	}

	// A session without a session cookie does not exist; nothing to save.
	if sessionCookie == "" {
		return
	}

	var expiresAt time.Time
	switch {
	case haveSession && (current == nil || current.SessionCookie != newSessionCookie):
		expiresAt = time.Now().Add(models.SessionDuration)
	case current != nil:
		expiresAt = current.ExpiresAt
	default:
		expiresAt = time.Now().Add(models.SessionDuration)
	}

	err := t.sessions.Save(ctx, models.Session{
		SessionCookie: sessionCookie,
		XSRFToken:     xsrfToken,
		ExpiresAt:     expiresAt,
	})
	if err != nil {
		t.logger.Error().Err(err).Msg("failed to persist session from response cookies")
	}
}
